package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/session"
)

// OverviewController renders the dashboard landing page.
type OverviewController struct {
	base
	api *classlens.Client
}

// NewOverviewController creates a new OverviewController.
func NewOverviewController(api *classlens.Client, sessions *session.Manager, lgr zerolog.Logger) *OverviewController {
	return &OverviewController{
		base: base{sessions: sessions, logger: lgr},
		api:  api,
	}
}

// Show renders the overview counters. A failed stats fetch renders zeros
// rather than an error page; the counters are decoration, not data entry.
func (oc *OverviewController) Show(c *gin.Context) {
	stats, err := oc.api.Stats(c.Request.Context(), middleware.Token(c))
	if err != nil {
		if oc.handleUnauthorized(c, err) {
			return
		}
		oc.logger.Warn().Err(err).Msg("stats fetch failed")
		stats = models.Stats{}
	}

	data := pageData(c, "overview")
	data["Stats"] = stats
	c.HTML(http.StatusOK, "overview.html", data)
}
