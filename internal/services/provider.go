package services

import (
	"github.com/KirkDiggler/dnd-dpr/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
	"github.com/KirkDiggler/dnd-dpr/internal/services/dpr"
)

// Provider holds all service instances
type Provider struct {
	DPRService dpr.Service
	Weapons    dnd5e.Client
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	DNDClient        dnd5e.Client
	ReportRepository reports.Repository
	DefaultBand      difficulty.Band
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	// Use in-memory repository if none provided
	reportRepo := cfg.ReportRepository
	if reportRepo == nil {
		reportRepo = reports.NewInMemory(nil)
	}

	// Weapons are always answerable offline
	weapons := dnd5e.NewCatalog()
	if cfg.DNDClient != nil {
		weapons = dnd5e.WithFallback(cfg.DNDClient, weapons)
	}

	dprService, err := dpr.NewService(&dpr.ServiceConfig{
		Repository:  reportRepo,
		DefaultBand: cfg.DefaultBand,
	})
	if err != nil {
		return nil, err
	}

	return &Provider{
		DPRService: dprService,
		Weapons:    weapons,
	}, nil
}
