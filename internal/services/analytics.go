package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saloncartapp/saloncart/internal/db"
)

type analyticsStore interface {
	SalonPerformance(ctx context.Context, salonID *uuid.UUID) ([]db.SalonPerformance, error)
	ItemPerformance(ctx context.Context, salonID *uuid.UUID) ([]db.ItemPerformance, error)
}

// AnalyticsService exposes aggregated sales figures for the admin dashboard.
type AnalyticsService struct {
	store analyticsStore
}

func NewAnalyticsService(store analyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

func (s *AnalyticsService) SalonPerformance(ctx context.Context, salonID *uuid.UUID) ([]db.SalonPerformance, error) {
	stats, err := s.store.SalonPerformance(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate salon performance: %w", err)
	}
	if stats == nil {
		stats = []db.SalonPerformance{}
	}
	return stats, nil
}

func (s *AnalyticsService) ItemPerformance(ctx context.Context, salonID *uuid.UUID) ([]db.ItemPerformance, error) {
	stats, err := s.store.ItemPerformance(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate item performance: %w", err)
	}
	if stats == nil {
		stats = []db.ItemPerformance{}
	}
	return stats, nil
}
