// Package aggregate fetches a project and its four dependent records
// concurrently and assembles them into one consistent snapshot. A failed
// or empty dependent read never aborts the others; it simply leaves its
// slot nil, meaning "not yet created".
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/injaz-app/injaz/pkg/core"
)

// Source provides the five reads the aggregator fans out over. The
// dependent reads return collections; the first element, if any, is the
// canonical record.
type Source interface {
	GetProject(ctx context.Context, id string) (*core.Project, error)
	ListSitePlans(ctx context.Context, projectID string) ([]*core.SitePlanRecord, error)
	ListLicenses(ctx context.Context, projectID string) ([]*core.LicenseRecord, error)
	ListContracts(ctx context.Context, projectID string) ([]*core.ContractRecord, error)
	ListAwardings(ctx context.Context, projectID string) ([]*core.AwardingRecord, error)
}

// Fetch reads the project record and all dependent records concurrently
// and waits for every outcome. Only a failed project read is an error;
// dependent failures degrade to nil slots and are logged at debug level.
func Fetch(ctx context.Context, src Source, projectID string, logger *slog.Logger) (*core.Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	snap := &core.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := src.GetProject(gctx, projectID)
		if err != nil {
			return fmt.Errorf("fetch project %s: %w", projectID, err)
		}
		if p == nil {
			return fmt.Errorf("project %s not found", projectID)
		}
		snap.Project = p
		return nil
	})

	g.Go(func() error {
		recs, err := src.ListSitePlans(gctx, projectID)
		snap.SitePlan = firstOrNil(recs, err, logger, "siteplan")
		return nil
	})
	g.Go(func() error {
		recs, err := src.ListLicenses(gctx, projectID)
		snap.License = firstOrNil(recs, err, logger, "license")
		return nil
	})
	g.Go(func() error {
		recs, err := src.ListContracts(gctx, projectID)
		snap.Contract = firstOrNil(recs, err, logger, "contract")
		return nil
	})
	g.Go(func() error {
		recs, err := src.ListAwardings(gctx, projectID)
		snap.Awarding = firstOrNil(recs, err, logger, "awarding")
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// firstOrNil extracts the canonical record from a list read, treating
// failures and empty lists alike as absence.
func firstOrNil[T any](recs []*T, err error, logger *slog.Logger, kind string) *T {
	if err != nil {
		logger.Debug("dependent read failed, treating as absent", "kind", kind, "error", err)
		return nil
	}
	if len(recs) == 0 {
		return nil
	}
	return recs[0]
}

// Aggregator serializes snapshot refreshes for a changing project
// identifier. A refresh that completes after the identifier has moved on
// is discarded so an out-of-order completion can never overwrite newer
// state.
type Aggregator struct {
	src    Source
	logger *slog.Logger

	mu      sync.Mutex
	gen     uint64
	current *core.Snapshot
}

// ErrStale reports that a refresh completed after the project identifier
// changed and its result was discarded.
var ErrStale = fmt.Errorf("aggregate: refresh superseded")

// New creates an Aggregator over src.
func New(src Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{src: src, logger: logger}
}

// Refresh fetches a fresh snapshot for projectID. If another Refresh is
// started before this one settles, the earlier result is dropped and
// ErrStale returned.
func (a *Aggregator) Refresh(ctx context.Context, projectID string) (*core.Snapshot, error) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	snap, err := Fetch(ctx, a.src, projectID, a.logger)

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	a.current = snap
	return snap, nil
}

// Current returns the latest accepted snapshot, or nil when no refresh
// has completed yet.
func (a *Aggregator) Current() *core.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}
