package handler

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/vqhuy/librarian/config"
	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/internal/jsonlog"
	"github.com/vqhuy/librarian/service"
)

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, []*data.BorrowStat]
	service service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, []*data.BorrowStat], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		service: service,
	}
}
