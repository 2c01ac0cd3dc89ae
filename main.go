package main

import (
	"os"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/vqhuy/librarian/config"
	"github.com/vqhuy/librarian/data"
	_ "github.com/vqhuy/librarian/docs"
	"github.com/vqhuy/librarian/handler"
	"github.com/vqhuy/librarian/internal/jsonlog"
	"github.com/vqhuy/librarian/repository"
	"github.com/vqhuy/librarian/repository/postgres"
	"github.com/vqhuy/librarian/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title Librarian API
// @version 1.0.0
// @description This is an API service for managing a library: books, members, borrows, fines, rules and reports.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Other shared resources: waitgroup and in-memory cache of borrow statistics
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, []*data.BorrowStat](30 * time.Minute))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo)
	handler := handler.New(cfg, logger, cache, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
