package identities

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)
	GetByKey(ctx context.Context, identityKey string) (*models.Identity, error)
	GetBySecondaryKey(ctx context.Context, secondaryKey string) (*models.Identity, error)
	ExistsBySecondaryKey(ctx context.Context, secondaryKey string) (bool, error)
	Delete(ctx context.Context, identityKey string) error
	List(ctx context.Context) ([]models.Identity, error)
}
