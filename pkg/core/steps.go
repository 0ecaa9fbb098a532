package core

// StepID identifies a wizard step.
type StepID string

const (
	StepSetup    StepID = "setup"
	StepSitePlan StepID = "siteplan"
	StepLicense  StepID = "license"
	StepContract StepID = "contract"
	StepAward    StepID = "award"
)

// AllStepIDs lists every step id in canonical wizard order.
var AllStepIDs = []StepID{StepSetup, StepSitePlan, StepLicense, StepContract, StepAward}

// Valid reports whether id is one of the known steps.
func (id StepID) Valid() bool {
	for _, s := range AllStepIDs {
		if id == s {
			return true
		}
	}
	return false
}
