package handler

import (
	"github.com/moodlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	entries  *service.EntryService
	insights *service.InsightService
	exports  *service.ExportService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	entryService := service.NewEntryService(gdb)

	return &API{
		db:       gdb,
		entries:  entryService,
		insights: service.NewInsightService(entryService),
		exports:  service.NewExportService(entryService),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
