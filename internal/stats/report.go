package stats

import (
	"context"

	"github.com/verte-zerg/heropick/internal/model"
)

// PickSource reads the all-time pick log.
type PickSource interface {
	ListPickCounts(ctx context.Context) ([]model.PickCount, error)
	CountPicks(ctx context.Context) (int, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Counts []model.PickCount
	Total  int
}

// BuildReport loads pick counts from the log.
func BuildReport(ctx context.Context, src PickSource) (Report, error) {
	counts, err := src.ListPickCounts(ctx)
	if err != nil {
		return Report{}, err
	}
	total, err := src.CountPicks(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Counts: counts, Total: total}, nil
}
