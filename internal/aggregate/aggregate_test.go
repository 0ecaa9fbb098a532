package aggregate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/injaz-app/injaz/internal/testutil"
	"github.com/injaz-app/injaz/pkg/core"
)

// fakeSource is a scriptable Source. Per-kind errors and delays simulate
// slow or failing backend reads.
type fakeSource struct {
	mu sync.Mutex

	project  *core.Project
	siteplan []*core.SitePlanRecord
	license  []*core.LicenseRecord
	contract []*core.ContractRecord
	awarding []*core.AwardingRecord

	errs   map[string]error
	delays map[string]time.Duration
	calls  map[string]int
}

func newFakeSource(projectID string) *fakeSource {
	return &fakeSource{
		project: &core.Project{ID: projectID},
		errs:    make(map[string]error),
		delays:  make(map[string]time.Duration),
		calls:   make(map[string]int),
	}
}

func (f *fakeSource) step(kind string) error {
	f.mu.Lock()
	f.calls[kind]++
	d := f.delays[kind]
	err := f.errs[kind]
	f.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
	return err
}

func (f *fakeSource) GetProject(_ context.Context, id string) (*core.Project, error) {
	if err := f.step("project"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil || f.project.ID != id {
		return nil, nil
	}
	p := *f.project
	return &p, nil
}

func (f *fakeSource) ListSitePlans(_ context.Context, _ string) ([]*core.SitePlanRecord, error) {
	if err := f.step("siteplan"); err != nil {
		return nil, err
	}
	return f.siteplan, nil
}

func (f *fakeSource) ListLicenses(_ context.Context, _ string) ([]*core.LicenseRecord, error) {
	if err := f.step("license"); err != nil {
		return nil, err
	}
	return f.license, nil
}

func (f *fakeSource) ListContracts(_ context.Context, _ string) ([]*core.ContractRecord, error) {
	if err := f.step("contract"); err != nil {
		return nil, err
	}
	return f.contract, nil
}

func (f *fakeSource) ListAwardings(_ context.Context, _ string) ([]*core.AwardingRecord, error) {
	if err := f.step("awarding"); err != nil {
		return nil, err
	}
	return f.awarding, nil
}

func TestFetch_AssemblesSnapshot(t *testing.T) {
	src := newFakeSource("p-1")
	src.siteplan = []*core.SitePlanRecord{{ID: "sp-1"}, {ID: "sp-2"}}
	src.contract = []*core.ContractRecord{{ID: "ct-1"}}

	snap, err := Fetch(context.Background(), src, "p-1", testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if snap.Project == nil || snap.Project.ID != "p-1" {
		t.Errorf("project = %+v, want p-1", snap.Project)
	}
	// First element of a list read is the canonical record.
	if snap.SitePlan == nil || snap.SitePlan.ID != "sp-1" {
		t.Errorf("siteplan = %+v, want sp-1", snap.SitePlan)
	}
	if snap.Contract == nil || snap.Contract.ID != "ct-1" {
		t.Errorf("contract = %+v, want ct-1", snap.Contract)
	}
	if snap.License != nil || snap.Awarding != nil {
		t.Errorf("empty reads must yield nil slots, got license=%v awarding=%v", snap.License, snap.Awarding)
	}
}

func TestFetch_DependentFailureDoesNotAbort(t *testing.T) {
	src := newFakeSource("p-1")
	src.license = []*core.LicenseRecord{{ID: "lc-1"}}
	src.errs["siteplan"] = errors.New("boom")
	src.errs["awarding"] = errors.New("boom")

	snap, err := Fetch(context.Background(), src, "p-1", testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if snap.SitePlan != nil || snap.Awarding != nil {
		t.Error("failed reads must yield nil slots")
	}
	if snap.License == nil {
		t.Error("sibling reads must still complete")
	}
	// The aggregator waits for all outcomes.
	for _, kind := range []string{"project", "siteplan", "license", "contract", "awarding"} {
		if src.calls[kind] != 1 {
			t.Errorf("%s called %d times, want 1", kind, src.calls[kind])
		}
	}
}

func TestFetch_ProjectFailureAborts(t *testing.T) {
	src := newFakeSource("p-1")
	src.errs["project"] = errors.New("unreachable")

	if _, err := Fetch(context.Background(), src, "p-1", testutil.NewTestLogger(t)); err == nil {
		t.Fatal("expected error when the project read fails")
	}
}

func TestFetch_MissingProject(t *testing.T) {
	src := newFakeSource("p-1")
	if _, err := Fetch(context.Background(), src, "p-other", testutil.NewTestLogger(t)); err == nil {
		t.Fatal("expected error for an unknown project id")
	}
}

func TestAggregator_StaleRefreshDiscarded(t *testing.T) {
	src := newFakeSource("p-1")
	src.delays["contract"] = 100 * time.Millisecond

	agg := New(src, testutil.NewTestLogger(t))

	var wg sync.WaitGroup
	wg.Add(1)
	var slowErr error
	go func() {
		defer wg.Done()
		_, slowErr = agg.Refresh(context.Background(), "p-1")
	}()

	// Let the slow refresh start, then supersede it.
	time.Sleep(20 * time.Millisecond)
	src.mu.Lock()
	src.project = &core.Project{ID: "p-2", Name: "second"}
	delete(src.delays, "contract")
	src.mu.Unlock()

	snap, err := agg.Refresh(context.Background(), "p-2")
	if err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	wg.Wait()

	if !errors.Is(slowErr, ErrStale) {
		t.Errorf("superseded refresh error = %v, want ErrStale", slowErr)
	}
	if cur := agg.Current(); cur != snap || cur.Project.ID != "p-2" {
		t.Errorf("current snapshot = %+v, want the p-2 snapshot", cur)
	}
}

func TestAggregator_CurrentNilBeforeFirstRefresh(t *testing.T) {
	agg := New(newFakeSource("p-1"), testutil.NewTestLogger(t))
	if agg.Current() != nil {
		t.Error("expected nil snapshot before first refresh")
	}
}
