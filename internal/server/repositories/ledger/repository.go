package ledger

import (
	"context"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.CheckInEvent) (*models.CheckInEvent, error)
	ListByIdentity(ctx context.Context, identityKey string, limit int, mostRecentFirst bool) ([]models.CheckInEvent, error)
	ListByDate(ctx context.Context, calendarDate string) ([]models.CheckInEvent, error)
	CountDistinctDates(ctx context.Context, identityKey string) (int, error)
	DeleteByIdentity(ctx context.Context, identityKey string) (int64, error)
}
