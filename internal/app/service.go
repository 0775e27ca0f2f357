package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pscheid92/salespulse/internal/domain"
	"github.com/pscheid92/salespulse/internal/metrics"
	"github.com/pscheid92/salespulse/internal/store"
)

// DataSource is the remote entity provider, one fetch per resource kind.
type DataSource interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
	FetchAccounts(ctx context.Context) ([]domain.Account, error)
	FetchCalls(ctx context.Context) ([]domain.Call, error)
	FetchEmails(ctx context.Context) ([]domain.Email, error)
}

var summaryResources = []domain.Resource{
	domain.ResourceUsers, domain.ResourceAccounts, domain.ResourceCalls, domain.ResourceEmails,
}

var listingResources = []domain.Resource{
	domain.ResourceUsers, domain.ResourceAccounts, domain.ResourceCalls,
}

// Service is the application layer: it drives fetches into the entity store
// and recomputes the reporting pipeline from store snapshots. Reports are
// total, synchronous computations; only the fetch boundary suspends.
type Service struct {
	source DataSource
	store  *store.Store

	// refreshGroup collapses concurrent refreshes of the same resource
	// pair so a navigation storm issues one upstream round-trip.
	refreshGroup singleflight.Group
}

func NewService(source DataSource, entities *store.Store) *Service {
	return &Service{source: source, store: entities}
}

// RefreshDirectory fetches users and accounts concurrently. Each resource
// transitions loading → succeeded/failed on its own; a failure on one never
// blocks the other's success. The returned error joins all failures.
func (s *Service) RefreshDirectory(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("directory", func() (any, error) {
		return nil, runSteps(ctx,
			func(ctx context.Context) error {
				return refreshResource(ctx, s.store, domain.ResourceUsers, s.source.FetchUsers, s.store.ReplaceUsers)
			},
			func(ctx context.Context) error {
				return refreshResource(ctx, s.store, domain.ResourceAccounts, s.source.FetchAccounts, s.store.ReplaceAccounts)
			},
		)
	})
	s.publishStoreMetrics()
	return err
}

// RefreshInteractions fetches calls and emails concurrently, with the same
// per-resource independence as RefreshDirectory.
func (s *Service) RefreshInteractions(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("interactions", func() (any, error) {
		return nil, runSteps(ctx,
			func(ctx context.Context) error {
				return refreshResource(ctx, s.store, domain.ResourceCalls, s.source.FetchCalls, s.store.ReplaceCalls)
			},
			func(ctx context.Context) error {
				return refreshResource(ctx, s.store, domain.ResourceEmails, s.source.FetchEmails, s.store.ReplaceEmails)
			},
		)
	})
	s.publishStoreMetrics()
	return err
}

// RefreshAll refetches every collection. Used by the background ticker and
// the on-demand refresh endpoint.
func (s *Service) RefreshAll(ctx context.Context) error {
	refreshID := uuid.NewString()
	slog.InfoContext(ctx, "Refreshing all collections", "refresh_id", refreshID)

	err := runSteps(ctx, s.RefreshDirectory, s.RefreshInteractions)
	if err != nil {
		slog.WarnContext(ctx, "Refresh finished with failures", "refresh_id", refreshID, "error", err)
	}
	return err
}

// runSteps executes steps concurrently and joins their failures. Steps do
// not cancel each other: every resource gets its chance to complete.
func runSteps(ctx context.Context, steps ...func(context.Context) error) error {
	errs := make([]error, len(steps))
	var g errgroup.Group
	for i, step := range steps {
		i, step := i, step
		g.Go(func() error {
			errs[i] = step(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// refreshResource runs one resource through the idle/loading → terminal
// transition. On failure the store keeps the prior collection.
func refreshResource[T any](ctx context.Context, st *store.Store, r domain.Resource, fetch func(context.Context) ([]T, error), replace func([]T)) error {
	st.MarkLoading(r)

	items, err := fetch(ctx)
	if err != nil {
		st.MarkFailed(r, err)
		slog.WarnContext(ctx, "Fetch failed, keeping previous collection", "resource", r, "error", err)
		return err
	}

	replace(items)
	metrics.CollectionSize.WithLabelValues(string(r)).Set(float64(len(items)))
	slog.DebugContext(ctx, "Collection replaced", "resource", r, "count", len(items))
	return nil
}

func (s *Service) publishStoreMetrics() {
	metrics.SnapshotVersion.Set(float64(s.store.Version()))
}

// --- Reports ---

// SummaryReport is the territory summary view: one stats row per territory
// account, paginated.
type SummaryReport struct {
	Version    uint64
	Loading    bool
	Failures   map[domain.Resource]string
	Accounts   []domain.Account
	Page       domain.Page[domain.StatsRow]
	PageNumber int
}

// ListingReport is the call listing view, filtered and paginated.
type ListingReport struct {
	Version    uint64
	Loading    bool
	Failures   map[domain.Resource]string
	Page       domain.Page[domain.CallRow]
	PageNumber int
}

// TerritorySummary recomputes the summary pipeline from the current
// snapshot. While any required resource is still idle or loading, the
// report only says so — derived statistics render after all resources
// reach a terminal state. Failed resources are named in Failures while the
// remaining data still renders from retained collections.
//
// The requested page is clamped to the valid range before paginating.
func (s *Service) TerritorySummary(userID, page, size int) SummaryReport {
	snap := s.store.Snapshot()

	report := SummaryReport{Version: snap.Version}
	if !snap.AllTerminal(summaryResources...) {
		report.Loading = true
		return report
	}
	report.Failures = snap.Failures(summaryResources...)

	report.Accounts = domain.ResolveAccountsForUser(userID, snap.Users, snap.Accounts)
	rows := domain.SummaryRows(userID, snap.Users, snap.Accounts, snap.Calls, snap.Emails)

	report.PageNumber = domain.ClampPage(page, domain.TotalPages(len(rows), size))
	report.Page = domain.Paginate(rows, report.PageNumber, size)
	return report
}

// CallListing recomputes the call listing pipeline from the current
// snapshot, applying the call-type filter. The emails collection is not
// consulted: an "Email" filter matches call records of that type only.
func (s *Service) CallListing(userID int, callTypeFilter string, page, size int) ListingReport {
	snap := s.store.Snapshot()

	report := ListingReport{Version: snap.Version}
	if !snap.AllTerminal(listingResources...) {
		report.Loading = true
		return report
	}
	report.Failures = snap.Failures(listingResources...)

	rows := domain.ListCalls(userID, callTypeFilter, snap.Users, snap.Accounts, snap.Calls)

	report.PageNumber = domain.ClampPage(page, domain.TotalPages(len(rows), size))
	report.Page = domain.Paginate(rows, report.PageNumber, size)
	return report
}

// Users returns the selectable users and the users resource state.
func (s *Service) Users() ([]domain.User, domain.ResourceState) {
	snap := s.store.Snapshot()
	return snap.Users, snap.State(domain.ResourceUsers)
}

// ResourceStates reports the fetch state of every resource kind.
func (s *Service) ResourceStates() map[domain.Resource]domain.ResourceState {
	snap := s.store.Snapshot()
	states := make(map[domain.Resource]domain.ResourceState, len(snap.States))
	for r, st := range snap.States {
		states[r] = st
	}
	return states
}

// Ready reports whether the directory resources have been fetched at least
// once, which is what the summary and listing views minimally need.
func (s *Service) Ready() bool {
	snap := s.store.Snapshot()
	return snap.State(domain.ResourceUsers).Status == domain.StatusSucceeded &&
		snap.State(domain.ResourceAccounts).Status == domain.StatusSucceeded
}
