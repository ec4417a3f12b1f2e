package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/playground-api/internal/interfaces/httpserver/handlers"
	v1 "github.com/janhq/playground-api/internal/interfaces/httpserver/routes/v1"
)

// Provider registers every versioned route group.
type Provider struct {
	v1 *v1.Routes
}

func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{v1: v1.NewRoutes(handlerProvider)}
}

// Register attaches all API routes to engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.v1.Register(engine)
}
