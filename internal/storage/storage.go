// Package storage defines the snapshot persistence contract. Backends store
// whole collections at a time; the in-memory state stays authoritative.
package storage

import (
	"context"

	"github.com/zorofrizzy/breatheBack/internal/domain"
)

type Storage interface {
	LoadZones(ctx context.Context) ([]domain.Zone, error)
	SaveZones(ctx context.Context, zones []domain.Zone) error

	// LoadUserPoints returns nil when no ledger has been stored yet.
	LoadUserPoints(ctx context.Context) (*domain.UserPoints, error)
	SaveUserPoints(ctx context.Context, points domain.UserPoints) error

	LoadEvents(ctx context.Context) ([]domain.CommunityEvent, error)
	SaveEvents(ctx context.Context, events []domain.CommunityEvent) error

	// Reset drops all stored collections.
	Reset(ctx context.Context) error
}
