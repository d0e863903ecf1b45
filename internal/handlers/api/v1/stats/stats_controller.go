package stats

import (
	"net/http"

	"answerhub/internal/response"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles stats and tag API endpoints.
type Controller struct {
	services *services.Collection
	builder  *response.Builder
	logger   *zap.Logger
}

// NewController creates a new stats API controller.
func NewController(services *services.Collection, builder *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{
		services: services,
		builder:  builder,
		logger:   logger,
	}
}

// Platform handles GET /api/v1/stats.
func (c *Controller) Platform(w http.ResponseWriter, r *http.Request) {
	stats, err := c.services.Stats.PlatformStats(r.Context())
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, stats)
}

// Tags handles GET /api/v1/tags.
func (c *Controller) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.services.Tag.ListWithCounts(r.Context())
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, tags)
}
