package storage

import (
	"context"

	"accneat/internal/model"
)

// Store persists champions chosen by fittest-organism selection.
type Store interface {
	Init(ctx context.Context) error
	SaveChampion(ctx context.Context, champion model.Champion) error
	GetChampion(ctx context.Context, id string) (model.Champion, bool, error)
	ListChampions(ctx context.Context) ([]model.Champion, error)
}
