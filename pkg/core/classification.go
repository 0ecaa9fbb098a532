package core

// ProjectType identifies the broad category of a construction project.
type ProjectType string

const (
	ProjectTypeVilla        ProjectType = "villa"
	ProjectTypeCommercial   ProjectType = "commercial"
	ProjectTypeMaintenance  ProjectType = "maintenance"
	ProjectTypeGovernmental ProjectType = "governmental"
	ProjectTypeFitout       ProjectType = "fitout"
)

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeVilla, ProjectTypeCommercial, ProjectTypeMaintenance,
		ProjectTypeGovernmental, ProjectTypeFitout:
		return true
	}
	return false
}

// VillaCategory refines ProjectTypeVilla. It is meaningless for any
// other project type.
type VillaCategory string

const (
	VillaCategoryResidential VillaCategory = "residential"
	VillaCategoryCommercial  VillaCategory = "commercial"
)

// Valid reports whether c is one of the known villa categories.
func (c VillaCategory) Valid() bool {
	return c == VillaCategoryResidential || c == VillaCategoryCommercial
}

// ContractType distinguishes a brand-new engagement from the
// continuation of an existing one.
type ContractType string

const (
	ContractTypeNew      ContractType = "new"
	ContractTypeContinue ContractType = "continue"
)

// Valid reports whether t is one of the known contract types.
func (t ContractType) Valid() bool {
	return t == ContractTypeNew || t == ContractTypeContinue
}

// Classification holds the project classification selections made on the
// wizard's setup step. It is created empty on wizard entry, populated
// from the persisted project record, and mutated only through explicit
// user selection.
type Classification struct {
	ProjectType   ProjectType   `json:"project_type"`
	VillaCategory VillaCategory `json:"villa_category,omitempty"`
	ContractType  ContractType  `json:"contract_type"`
	InternalCode  string        `json:"internal_code,omitempty"`
}

// Complete reports whether the classification is fully selected:
// a project type, a villa category when the type is villa, and a
// contract type. InternalCode is validated separately and does not
// participate in completeness.
func (c Classification) Complete() bool {
	if c.ProjectType == "" {
		return false
	}
	if c.ProjectType == ProjectTypeVilla && c.VillaCategory == "" {
		return false
	}
	return c.ContractType != ""
}

// SitePlanFlowEligible reports whether any wizard step beyond setup
// exists for this classification: a complete classification describing a
// new villa contract, residential or commercial.
func (c Classification) SitePlanFlowEligible() bool {
	if !c.Complete() {
		return false
	}
	if c.ProjectType != ProjectTypeVilla {
		return false
	}
	if !c.VillaCategory.Valid() {
		return false
	}
	return c.ContractType == ContractTypeNew
}
