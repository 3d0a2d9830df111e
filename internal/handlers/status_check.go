// internal/handlers/status_check.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/projektfabrik/pf-backend/internal/i18n"
	"github.com/projektfabrik/pf-backend/internal/services"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

type StatusCheckHandler struct {
	statusCheckService *services.StatusCheckService
}

func NewStatusCheckHandler(statusCheckService *services.StatusCheckService) *StatusCheckHandler {
	return &StatusCheckHandler{
		statusCheckService: statusCheckService,
	}
}

type recordStatusCheckRequest struct {
	Client string `json:"client"`
}

// POST /status
func (h *StatusCheckHandler) RecordStatusCheck(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req recordStatusCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	check, err := h.statusCheckService.Record(c.Request.Context(), req.Client)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyStatusCheckRecorded),
		"status_check": check,
	})
}

// GET /status
func (h *StatusCheckHandler) ListStatusChecks(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	checks, err := h.statusCheckService.List(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"status_checks": checks,
	})
}
