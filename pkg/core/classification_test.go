package core

import "testing"

func TestClassificationComplete(t *testing.T) {
	tests := []struct {
		name  string
		class Classification
		want  bool
	}{
		{"empty", Classification{}, false},
		{"missing contract type", Classification{ProjectType: ProjectTypeCommercial}, false},
		{"non-villa complete", Classification{ProjectType: ProjectTypeCommercial, ContractType: ContractTypeNew}, true},
		{"villa without category", Classification{ProjectType: ProjectTypeVilla, ContractType: ContractTypeNew}, false},
		{"villa with category", Classification{ProjectType: ProjectTypeVilla, VillaCategory: VillaCategoryResidential, ContractType: ContractTypeNew}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSitePlanFlowEligible(t *testing.T) {
	tests := []struct {
		name  string
		class Classification
		want  bool
	}{
		{"eligible villa", Classification{ProjectType: ProjectTypeVilla, VillaCategory: VillaCategoryResidential, ContractType: ContractTypeNew}, true},
		{"commercial villa category", Classification{ProjectType: ProjectTypeVilla, VillaCategory: VillaCategoryCommercial, ContractType: ContractTypeNew}, true},
		{"continuation contract", Classification{ProjectType: ProjectTypeVilla, VillaCategory: VillaCategoryResidential, ContractType: ContractTypeContinue}, false},
		{"non-villa", Classification{ProjectType: ProjectTypeGovernmental, ContractType: ContractTypeNew}, false},
		{"villa with bogus category", Classification{ProjectType: ProjectTypeVilla, VillaCategory: "penthouse", ContractType: ContractTypeNew}, false},
		{"incomplete", Classification{ProjectType: ProjectTypeVilla}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.SitePlanFlowEligible(); got != tt.want {
				t.Errorf("SitePlanFlowEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnumValidity(t *testing.T) {
	if ProjectType("castle").Valid() {
		t.Error("unknown project type should not be valid")
	}
	if VillaCategory("penthouse").Valid() {
		t.Error("unknown villa category should not be valid")
	}
	if ContractType("renewal").Valid() {
		t.Error("unknown contract type should not be valid")
	}
	if !ProjectTypeFitout.Valid() || !VillaCategoryCommercial.Valid() || !ContractTypeContinue.Valid() {
		t.Error("known enum values should be valid")
	}
}
