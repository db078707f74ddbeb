package review

import (
	"context"
	"log"
)

// ServiceRatingRefresher is the repository slice the default aggregator uses.
type ServiceRatingRefresher interface {
	RefreshRating(ctx context.Context, serviceID int64) error
}

// Aggregator recomputes the denormalized rating columns on the service row.
// It is the in-process stand-in for the rating-aggregation consumer.
type Aggregator struct {
	services ServiceRatingRefresher
}

func NewAggregator(services ServiceRatingRefresher) *Aggregator {
	return &Aggregator{services: services}
}

func (a *Aggregator) ReviewCreated(ctx context.Context, serviceID, providerID int64) {
	if err := a.services.RefreshRating(ctx, serviceID); err != nil {
		log.Printf("rating_refresh_failed service_id=%d provider_id=%d err=%v", serviceID, providerID, err)
	}
}
