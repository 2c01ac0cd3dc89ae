package service

import (
	"sync"

	"github.com/vqhuy/librarian/config"
	"github.com/vqhuy/librarian/internal/jsonlog"
	"github.com/vqhuy/librarian/repository"
)

type Service interface {
	books
	members
	borrows
	finereceipts
	rules
	reports
	bookcopies
	failedValidation(map[string]string) error
}

// service defines the app's service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}
