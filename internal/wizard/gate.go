package wizard

import "github.com/injaz-app/injaz/pkg/core"

// CanEnter reports whether the step at index may become active. Index 0
// is always enterable. Any later index requires an eligible, complete
// classification. Navigation is classification-gated, not data-gated:
// completeness of earlier steps' saved records is never required, so a
// user may jump ahead to inspect a later step's empty form.
func CanEnter(index int, class core.Classification) bool {
	if index <= 0 {
		return index == 0
	}
	return class.Complete() && class.SitePlanFlowEligible()
}

// IsCompleted reports whether a step's backing data exists. Setup is
// completed once the classification is complete; every other step is
// completed when its slot in the aggregated snapshot is non-nil.
// Completion drives a checkmark only and never gates navigation.
func IsCompleted(id core.StepID, snap *core.Snapshot, class core.Classification) bool {
	if id == core.StepSetup {
		return class.Complete()
	}
	if snap == nil {
		return false
	}
	switch id {
	case core.StepSitePlan:
		return snap.SitePlan != nil
	case core.StepLicense:
		return snap.License != nil
	case core.StepContract:
		return snap.Contract != nil
	case core.StepAward:
		return snap.Awarding != nil
	}
	return false
}
