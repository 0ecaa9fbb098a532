// Package wizard computes the dynamic step graph of the project
// data-entry wizard and tracks which step is enterable, active and
// completed. The graph is derived state: it is recomputed from the
// project classification and the contract record on every relevant
// change, never cached across input changes.
package wizard

import "github.com/injaz-app/injaz/pkg/core"

// FundingPath is the tri-state outcome of the contract funding
// decision. Before a contract record exists the path is unknown and the
// awarding step is shown optimistically; once a contract is saved as
// privately funded the step disappears.
type FundingPath int

const (
	FundingUnknown FundingPath = iota
	FundingBank
	FundingPrivate
)

// PathOf derives the funding path from a contract record, which may be
// nil.
func PathOf(contract *core.ContractRecord) FundingPath {
	if contract == nil {
		return FundingUnknown
	}
	if contract.Classification == core.FundingPrivate {
		return FundingPrivate
	}
	return FundingBank
}

// StepDescriptor describes one step of the resolved graph. Descriptors
// are not persisted; they are recomputed on every render.
type StepDescriptor struct {
	ID      core.StepID `json:"id"`
	Ordinal int         `json:"ordinal"`
}

// ResolveSteps computes the ordered step list for the current session.
// The graph always starts with setup. When the classification is not
// eligible for the site-plan flow, setup is the whole graph regardless
// of any other state. Otherwise siteplan, license and contract follow in
// fixed order, and award is appended unless the contract has been saved
// as privately funded.
func ResolveSteps(class core.Classification, path FundingPath) []StepDescriptor {
	steps := []StepDescriptor{{ID: core.StepSetup}}

	if !class.SitePlanFlowEligible() {
		return steps
	}

	steps = append(steps,
		StepDescriptor{ID: core.StepSitePlan},
		StepDescriptor{ID: core.StepLicense},
		StepDescriptor{ID: core.StepContract},
	)
	if path != FundingPrivate {
		steps = append(steps, StepDescriptor{ID: core.StepAward})
	}

	for i := range steps {
		steps[i].Ordinal = i
	}
	return steps
}
