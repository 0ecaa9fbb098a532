package core

import (
	"fmt"
	"math"
	"time"
)

// FundingClassification identifies how a contract is financed.
type FundingClassification string

const (
	FundingHousingLoanProgram FundingClassification = "housing_loan_program"
	FundingPrivate            FundingClassification = "private_funding"
)

// Valid reports whether f is one of the known funding classifications.
func (f FundingClassification) Valid() bool {
	return f == FundingHousingLoanProgram || f == FundingPrivate
}

// ExtraFeeMode describes how a funding share's extra consultant fee is
// expressed.
type ExtraFeeMode string

const (
	ExtraModePercent ExtraFeeMode = "percent"
	ExtraModeFixed   ExtraFeeMode = "fixed"
	ExtraModeOther   ExtraFeeMode = "other"
)

// ShareFees holds one funding share's consultant-fee configuration. The
// percentages are inclusive percentages: defined relative to the net
// amount, already folded into the stated gross figure.
type ShareFees struct {
	HasFee         bool         `json:"has_fee"`
	DesignPct      float64      `json:"design_pct"`
	SupervisionPct float64      `json:"supervision_pct"`
	ExtraMode      ExtraFeeMode `json:"extra_mode,omitempty"`
	ExtraValue     float64      `json:"extra_value"`
}

// OwnerValueTolerance is the maximum deviation allowed between a saved
// owner gross value and the value derived from total and bank.
const OwnerValueTolerance = 0.01

// ContractRecord is the persisted contract step record. It is absent
// until the contract step is first saved; later edits patch the same
// record under the server-assigned ID.
type ContractRecord struct {
	ID             string                `json:"id,omitempty"`
	ProjectID      string                `json:"project_id"`
	Classification FundingClassification `json:"classification"`
	Type           string                `json:"type,omitempty"`

	GrossTotal float64 `json:"total_value"`
	GrossBank  float64 `json:"total_bank_value"`
	GrossOwner float64 `json:"total_owner_value"`

	BankFees  ShareFees `json:"bank_fees"`
	OwnerFees ShareFees `json:"owner_fees"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DerivedGrossOwner returns the owner share implied by the funding
// classification: total minus bank (floored at zero) under the housing
// loan program, the full total otherwise.
func (r *ContractRecord) DerivedGrossOwner() float64 {
	if r.Classification == FundingHousingLoanProgram {
		return math.Max(0, r.GrossTotal-r.GrossBank)
	}
	return r.GrossTotal
}

// NormalizeFunding enforces the funding invariant in place: under
// private funding the bank share is zeroed and the owner share equals
// the total; under the loan program the owner share is recomputed from
// total and bank.
func (r *ContractRecord) NormalizeFunding() {
	if r.Classification != FundingHousingLoanProgram {
		r.GrossBank = 0
	}
	r.GrossOwner = r.DerivedGrossOwner()
}

// ValidateOwnerValue rejects a record whose saved owner share deviates
// from the derived one by more than OwnerValueTolerance. A zero saved
// owner value is treated as "not provided" and accepted; NormalizeFunding
// fills it in.
func (r *ContractRecord) ValidateOwnerValue() error {
	if r.GrossOwner == 0 {
		return nil
	}
	derived := r.DerivedGrossOwner()
	if math.Abs(r.GrossOwner-derived) > OwnerValueTolerance {
		return fmt.Errorf("owner value %.2f does not match derived share %.2f", r.GrossOwner, derived)
	}
	return nil
}

// Validate checks the record's enumerated fields and amounts.
func (r *ContractRecord) Validate() error {
	if !r.Classification.Valid() {
		return fmt.Errorf("unknown funding classification %q", r.Classification)
	}
	if r.GrossTotal < 0 || r.GrossBank < 0 || r.GrossOwner < 0 {
		return fmt.Errorf("contract amounts must not be negative")
	}
	if r.Classification == FundingHousingLoanProgram && r.GrossBank > r.GrossTotal {
		return fmt.Errorf("bank share %.2f exceeds total %.2f", r.GrossBank, r.GrossTotal)
	}
	return r.ValidateOwnerValue()
}
