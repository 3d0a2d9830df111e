// internal/handlers/project.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projektfabrik/pf-backend/internal/i18n"
	"github.com/projektfabrik/pf-backend/internal/services"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// POST /project-requests
func (h *ProjectHandler) CreateProjectRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	project, err := h.projectService.Create(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProjectSubmitted),
		"project": project,
	})
}

// GET /project-requests (admin)
func (h *ProjectHandler) GetProjectRequests(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.GetAll(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(projects, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /projects/approved (public)
func (h *ProjectHandler) GetApprovedProjects(c *gin.Context) {
	projects, err := h.projectService.GetApproved(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"projects": projects,
	})
}

// GET /project-requests/:id
func (h *ProjectHandler) GetProjectRequest(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			utils.NotFoundResponse(c, "project")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"project": project})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /project-requests/:id (admin)
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if req.Status == "" {
		utils.BadRequestResponse(c, "status is required", nil)
		return
	}

	project, err := h.projectService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProjectStatusUpdated),
		"project": project,
	})
}

// POST /project-requests/:id/block (admin)
func (h *ProjectHandler) BlockProject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req services.BlockProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	project, err := h.projectService.Block(id, &req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProjectBlocked),
		"project": project,
	})
}

// POST /project-requests/:id/unblock (admin)
func (h *ProjectHandler) UnblockProject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Unblock(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProjectUnblocked),
		"project": project,
	})
}

// POST /project-requests/:id/remove (requester)
func (h *ProjectHandler) RemoveProject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Remove(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProjectRemoved),
		"project": project,
	})
}

// POST /project-requests/:id/extend (requester)
func (h *ProjectHandler) ExtendProject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Extend(id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProjectExtended),
		"project": project,
	})
}

func parseProjectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid project request ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondWorkflowError maps service errors onto the HTTP taxonomy: unknown
// id is 404, rejected input or transition is 400, everything else is 500.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		utils.NotFoundResponse(c, "project")
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
