package wizard

import "github.com/injaz-app/injaz/pkg/core"

// StepMode is the per-step view/edit mode. It lives on the step's own
// runtime state so that switching projects or a reshaped graph cannot
// leak a stale mode.
type StepMode string

const (
	ModeView StepMode = "view"
	ModeEdit StepMode = "edit"
)

// StepState is the derived runtime state of one resolved step.
type StepState struct {
	StepDescriptor
	Locked    bool     `json:"locked"`
	Active    bool     `json:"active"`
	Completed bool     `json:"completed"`
	Mode      StepMode `json:"mode"`
}

// Session tracks the wizard state for one project: the resolved graph,
// the active index and per-step modes. All methods are total; degenerate
// inputs resolve to the one-step graph with setup active.
type Session struct {
	projectID string
	class     core.Classification
	snapshot  *core.Snapshot
	steps     []StepDescriptor
	active    int
	modes     map[core.StepID]StepMode
}

// NewSession creates a session for a project with an empty
// classification: a one-step graph with setup active.
func NewSession(projectID string) *Session {
	s := &Session{
		projectID: projectID,
		modes:     make(map[core.StepID]StepMode),
	}
	s.steps = ResolveSteps(s.class, FundingUnknown)
	return s
}

// ProjectID returns the project this session belongs to.
func (s *Session) ProjectID() string { return s.projectID }

// Apply feeds a new aggregated snapshot into the session. The graph is
// re-resolved from scratch (the previous result is discarded, never
// merged) and the active index is clamped if the graph shrank. A
// snapshot for a different project resets the session entirely,
// including all step modes.
func (s *Session) Apply(snap *core.Snapshot) {
	if snap != nil && snap.Project != nil && snap.Project.ID != s.projectID {
		s.projectID = snap.Project.ID
		s.active = 0
		s.modes = make(map[core.StepID]StepMode)
	}
	s.snapshot = snap

	s.class = core.Classification{}
	var contract *core.ContractRecord
	if snap != nil {
		if snap.Project != nil {
			s.class = snap.Project.Classification
		}
		contract = snap.Contract
	}

	s.steps = ResolveSteps(s.class, PathOf(contract))
	s.clamp()
}

// SetClassification re-resolves the graph for an edited (not yet saved)
// classification, keeping the current snapshot.
func (s *Session) SetClassification(class core.Classification) {
	s.class = class
	var contract *core.ContractRecord
	if s.snapshot != nil {
		contract = s.snapshot.Contract
	}
	s.steps = ResolveSteps(class, PathOf(contract))
	s.clamp()
}

// Enter requests activation of the step at index. Out-of-range requests
// (including those arriving via URL or query parameter) are clamped to
// the valid range first; a locked step is a no-op, not an error.
// It reports whether the active index changed.
func (s *Session) Enter(index int) bool {
	index = clampIndex(index, len(s.steps))
	if !CanEnter(index, s.class) {
		return false
	}
	if index == s.active {
		return false
	}
	s.active = index
	return true
}

// ActiveIndex returns the current active step index.
func (s *Session) ActiveIndex() int { return s.active }

// Steps returns the resolved graph with runtime state attached. Exactly
// one step is active.
func (s *Session) Steps() []StepState {
	out := make([]StepState, len(s.steps))
	for i, d := range s.steps {
		mode := s.modes[d.ID]
		if mode == "" {
			mode = ModeView
		}
		out[i] = StepState{
			StepDescriptor: d,
			Locked:         !CanEnter(i, s.class),
			Active:         i == s.active,
			Completed:      IsCompleted(d.ID, s.snapshot, s.class),
			Mode:           mode,
		}
	}
	return out
}

// SetMode records the view/edit mode for a step. Unknown steps are
// ignored.
func (s *Session) SetMode(id core.StepID, mode StepMode) {
	for _, d := range s.steps {
		if d.ID == id {
			s.modes[id] = mode
			return
		}
	}
}

// clamp keeps the active index valid after the graph changed shape.
func (s *Session) clamp() {
	s.active = clampIndex(s.active, len(s.steps))
	if !CanEnter(s.active, s.class) {
		s.active = 0
	}
}

func clampIndex(i, length int) int {
	if length <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
