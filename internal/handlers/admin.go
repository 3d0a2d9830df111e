// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/projektfabrik/pf-backend/internal/i18n"
	"github.com/projektfabrik/pf-backend/internal/scheduler"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

// AdminHandler exposes the sweep operations so an external scheduler can
// trigger them; they share the code paths of the in-process sweeper and are
// idempotent.
type AdminHandler struct {
	sweeper *scheduler.Sweeper
}

func NewAdminHandler(sweeper *scheduler.Sweeper) *AdminHandler {
	return &AdminHandler{
		sweeper: sweeper,
	}
}

// POST /admin/sweep/pending
func (h *AdminHandler) SweepPending(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	promoted, err := h.sweeper.RunPendingSweep()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeySweepCompleted),
		"promoted": promoted,
	})
}

// POST /admin/sweep/expirations
func (h *AdminHandler) SweepExpirations(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	expired, err := h.sweeper.RunExpirationSweep()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySweepCompleted),
		"expired": expired,
	})
}
