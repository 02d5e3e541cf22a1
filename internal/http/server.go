// README: API gateway; holds dependencies shared by the route handlers.
package http

import (
	"farerail/internal/http/handlers"
	"farerail/internal/logger"
	"farerail/internal/modules/pricing"
)

type ServerDeps struct {
	Catalog     handlers.CatalogReader
	Pricing     *pricing.Service
	Logger      logger.Logger
	CORSOrigins []string
}

type Server struct {
	catalog     handlers.CatalogReader
	pricing     *pricing.Service
	log         logger.Logger
	corsOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		catalog:     deps.Catalog,
		pricing:     deps.Pricing,
		log:         log,
		corsOrigins: deps.CORSOrigins,
	}
}
