package stats

import (
	"context"

	"github.com/verte-zerg/primefactorize/internal/model"
	"github.com/verte-zerg/primefactorize/internal/store"
)

// Report contains precomputed data for summary rendering.
type Report struct {
	Summary model.SessionSummary
	Runs    []model.RunAggregate
}

// BuildReport loads the summary and up to last runs from the ledger.
func BuildReport(ctx context.Context, st *store.Store, last int) (Report, error) {
	summary, err := st.Summary(ctx)
	if err != nil {
		return Report{}, err
	}
	runs, err := st.ListRuns(ctx, last)
	if err != nil {
		return Report{}, err
	}
	return Report{Summary: summary, Runs: runs}, nil
}
