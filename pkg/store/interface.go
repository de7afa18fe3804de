package store

import (
	"github.com/google/uuid"

	"dealsheet/pkg/models"
)

// Storage defines how analyzed deals are kept for the API layer. The engine
// itself never persists anything; implementations hold already-computed
// results so the UI can re-fetch them by ID.
type Storage interface {
	SaveDeal(deal *models.Deal) error
	GetDeal(id uuid.UUID) (*models.Deal, error)
	ListDeals() ([]*models.Deal, error)
	DeleteDeal(id uuid.UUID) error

	Close() error
}
