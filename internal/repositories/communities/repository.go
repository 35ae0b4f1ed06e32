package communities

import (
	"context"
	"time"

	"github.com/dmitrijs2005/linevault/internal/models"
)

type Repository interface {
	Ensure(ctx context.Context, id int64, now time.Time) error
	Get(ctx context.Context, id int64) (*models.Community, error)
}
