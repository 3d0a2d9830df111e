// internal/handlers/restoration.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projektfabrik/pf-backend/internal/i18n"
	"github.com/projektfabrik/pf-backend/internal/models"
	"github.com/projektfabrik/pf-backend/internal/services"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

type RestorationHandler struct {
	restorationService *services.RestorationService
}

func NewRestorationHandler(restorationService *services.RestorationService) *RestorationHandler {
	return &RestorationHandler{
		restorationService: restorationService,
	}
}

type requestRestorationRequest struct {
	ReviewType string `json:"review_type"`
}

// POST /project-requests/:id/request-restoration (requester)
func (h *RestorationHandler) RequestRestoration(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req requestRestorationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if req.ReviewType == "" {
		utils.BadRequestResponse(c, "review_type is required", nil)
		return
	}

	project, review, err := h.restorationService.Request(id, models.ReviewType(req.ReviewType))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	response := gin.H{
		"message": i18n.T(lang, i18n.KeyRestorationRequested),
		"project": project,
	}
	if review != nil {
		response["review"] = review
	}

	utils.SuccessResponse(c, response)
}

// POST /project-requests/:id/approve-restoration (admin)
func (h *RestorationHandler) ApproveRestoration(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.restorationService.Approve(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRestorationApproved),
		"project": project,
	})
}

// POST /project-requests/:id/reject-restoration (admin)
func (h *RestorationHandler) RejectRestoration(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.restorationService.Reject(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRestorationRejected),
		"project": project,
	})
}

// GET /restoration-reviews/:id
func (h *RestorationHandler) GetRestorationReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid restoration review ID", nil)
		return
	}

	review, err := h.restorationService.GetReview(id)
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			utils.NotFoundResponse(c, "restoration")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"review": review})
}
