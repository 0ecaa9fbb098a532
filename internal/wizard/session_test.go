package wizard

import (
	"testing"

	"github.com/injaz-app/injaz/pkg/core"
)

func eligibleSnapshot(projectID string, contract *core.ContractRecord) *core.Snapshot {
	return &core.Snapshot{
		Project: &core.Project{
			ID:             projectID,
			Classification: eligibleClassification(),
		},
		Contract: contract,
	}
}

func TestSession_StartsOnSetup(t *testing.T) {
	s := NewSession("p-1")

	steps := s.Steps()
	if len(steps) != 1 {
		t.Fatalf("expected one-step graph, got %d", len(steps))
	}
	if !steps[0].Active || steps[0].Locked {
		t.Errorf("setup should be active and unlocked, got %+v", steps[0])
	}
}

func TestSession_ClampOnShrink(t *testing.T) {
	s := NewSession("p-1")
	s.Apply(eligibleSnapshot("p-1", nil))

	if !s.Enter(4) {
		t.Fatal("expected to enter the award step")
	}

	// Saving the contract as privately funded removes the award step.
	s.Apply(eligibleSnapshot("p-1", &core.ContractRecord{
		ID:             "ct-1",
		Classification: core.FundingPrivate,
	}))

	steps := s.Steps()
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps after private funding, got %d", len(steps))
	}
	if s.ActiveIndex() != 3 {
		t.Errorf("active index = %d, want clamp to 3", s.ActiveIndex())
	}

	active := 0
	for _, st := range steps {
		if st.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("exactly one step must be active, got %d", active)
	}
}

func TestSession_EnterLockedStepIsNoop(t *testing.T) {
	s := NewSession("p-1")

	if s.Enter(3) {
		t.Error("entering a locked step must be a no-op")
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("active index = %d, want 0", s.ActiveIndex())
	}
}

func TestSession_RequestedIndexClamped(t *testing.T) {
	s := NewSession("p-1")
	s.Apply(eligibleSnapshot("p-1", nil))

	// A query-parameter step index far beyond the graph is clamped.
	s.Enter(99)
	if s.ActiveIndex() != 4 {
		t.Errorf("active index = %d, want last valid index 4", s.ActiveIndex())
	}

	s.Enter(-5)
	if s.ActiveIndex() != 0 {
		t.Errorf("active index = %d, want 0", s.ActiveIndex())
	}
}

func TestSession_ProjectSwitchResetsState(t *testing.T) {
	s := NewSession("p-1")
	s.Apply(eligibleSnapshot("p-1", nil))
	s.Enter(2)
	s.SetMode(core.StepLicense, ModeEdit)

	s.Apply(eligibleSnapshot("p-2", nil))

	if s.ProjectID() != "p-2" {
		t.Fatalf("project id = %s, want p-2", s.ProjectID())
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("active index = %d, want reset to 0", s.ActiveIndex())
	}
	for _, st := range s.Steps() {
		if st.Mode != ModeView {
			t.Errorf("step %s mode = %s, want view after project switch", st.ID, st.Mode)
		}
	}
}

func TestSession_SetClassificationReshapesGraph(t *testing.T) {
	s := NewSession("p-1")
	s.SetClassification(eligibleClassification())

	if got := len(s.Steps()); got != 5 {
		t.Fatalf("expected 5 steps for an eligible edit, got %d", got)
	}

	// Clearing the contract type collapses the graph back to setup.
	s.SetClassification(core.Classification{
		ProjectType:   core.ProjectTypeVilla,
		VillaCategory: core.VillaCategoryResidential,
	})
	if got := len(s.Steps()); got != 1 {
		t.Errorf("expected setup-only graph, got %d steps", got)
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("active index = %d, want 0", s.ActiveIndex())
	}
}

func TestSession_CompletionFollowsSnapshot(t *testing.T) {
	s := NewSession("p-1")
	snap := eligibleSnapshot("p-1", nil)
	snap.License = &core.LicenseRecord{ID: "lc-1"}
	s.Apply(snap)

	for _, st := range s.Steps() {
		wantDone := st.ID == core.StepSetup || st.ID == core.StepLicense
		if st.Completed != wantDone {
			t.Errorf("step %s completed = %v, want %v", st.ID, st.Completed, wantDone)
		}
	}
}

func TestSession_ModeTracksStep(t *testing.T) {
	s := NewSession("p-1")
	s.Apply(eligibleSnapshot("p-1", nil))

	s.SetMode(core.StepContract, ModeEdit)
	for _, st := range s.Steps() {
		want := ModeView
		if st.ID == core.StepContract {
			want = ModeEdit
		}
		if st.Mode != want {
			t.Errorf("step %s mode = %s, want %s", st.ID, st.Mode, want)
		}
	}
}
