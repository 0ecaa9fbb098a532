package finance

import (
	"fmt"

	"github.com/injaz-app/injaz/pkg/core"
)

// ComputeRaw decomposes a contract record that arrives as decoded JSON
// of unknown provenance. Numeric fields are coerced tolerantly (strings
// with currency noise degrade to zero); a shape the engine cannot
// process at all comes back as a *ComputeError carrying the raw payload.
func ComputeRaw(raw map[string]any) (b *Breakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = newComputeError(raw, r)
		}
	}()
	if raw == nil {
		return nil, newComputeError(raw, "nil payload")
	}
	rec := &core.ContractRecord{
		Classification: core.FundingClassification(stringOf(raw["classification"])),
		GrossTotal:     AmountOf(raw["total_value"]),
		GrossBank:      AmountOf(raw["total_bank_value"]),
		GrossOwner:     AmountOf(raw["total_owner_value"]),
		BankFees:       feesOf(raw["bank_fees"]),
		OwnerFees:      feesOf(raw["owner_fees"]),
	}
	return compute(rec), nil
}

func feesOf(v any) core.ShareFees {
	m, ok := v.(map[string]any)
	if !ok {
		return core.ShareFees{}
	}
	return core.ShareFees{
		HasFee:         boolOf(m["has_fee"]),
		DesignPct:      AmountOf(m["design_pct"]),
		SupervisionPct: AmountOf(m["supervision_pct"]),
		ExtraMode:      core.ExtraFeeMode(stringOf(m["extra_mode"])),
		ExtraValue:     AmountOf(m["extra_value"]),
	}
}

func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func boolOf(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1"
	case float64:
		return x != 0
	default:
		return false
	}
}
