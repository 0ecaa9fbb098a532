// Package finance implements the contract financial decomposition
// engine: it turns a gross contractual amount plus an inclusive
// consultant-fee percentage into a fee/net/VAT breakdown for the total
// contract and for each funding share.
//
// An inclusive percentage is defined relative to the net amount, so the
// stated gross figure already contains the fee. Recovering the fee means
// solving net * (1 + pct/100) = gross for net, hence
//
//	fee = gross * pct / (100 + pct)
//
// A naive gross * pct/100 would overstate the fee and is wrong for this
// domain.
package finance

import (
	"math"

	"github.com/injaz-app/injaz/pkg/core"
)

// VATRate is the value-added tax rate applied to every displayed figure
// in the tax-inclusive report.
const VATRate = 0.05

// rateTolerance is the floating tolerance used when deciding whether the
// owner and bank rates agree.
const rateTolerance = 1e-6

// Round rounds an amount to the nearest whole currency unit. Displayed
// amounts are always whole units; only intermediate percentage math runs
// unrounded.
func Round(x float64) float64 {
	return math.Round(x)
}

// FeeFromGross returns the consultant fee contained in gross under the
// inclusive percentage pct, rounded to a whole unit. Non-positive gross
// or pct yields zero.
func FeeFromGross(gross, pct float64) float64 {
	if gross <= 0 || pct <= 0 {
		return 0
	}
	return Round(gross * pct / (100 + pct))
}

// VAT returns the tax on amount, rounded to a whole unit.
func VAT(amount float64) float64 {
	return Round(amount * VATRate)
}

// Inclusive returns amount plus its VAT.
func Inclusive(amount float64) float64 {
	return amount + VAT(amount)
}

// SideRate assembles one funding share's inclusive fee percentage:
// design plus supervision plus a percent-mode extra fee. Fixed-amount
// and "other" extras never enter the percentage. A share whose fee flag
// is unset contributes a zero rate.
func SideRate(f core.ShareFees) float64 {
	if !f.HasFee {
		return 0
	}
	rate := f.DesignPct + f.SupervisionPct
	if f.ExtraMode == core.ExtraModePercent {
		rate += f.ExtraValue
	}
	return rate
}

// TotalRate picks the percentage used for the total-contract row. When
// the owner and bank rates agree within tolerance the shared value is
// used; otherwise the owner rate wins, falling back to the bank rate,
// falling back to zero.
func TotalRate(ownerRate, bankRate float64) float64 {
	if math.Abs(ownerRate-bankRate) <= rateTolerance {
		return ownerRate
	}
	if ownerRate > 0 {
		return ownerRate
	}
	if bankRate > 0 {
		return bankRate
	}
	return 0
}

// ShareBreakdown is the decomposition of one gross figure: the inclusive
// rate applied, the fee it contains, the net remainder, and the
// VAT-inclusive counterparts. Gross is rounded to a whole unit and
// Fee + Net == Gross holds exactly.
type ShareBreakdown struct {
	Rate  float64 `json:"rate"`
	Gross float64 `json:"gross"`
	Fee   float64 `json:"fee"`
	Net   float64 `json:"net"`

	GrossVAT       float64 `json:"gross_vat"`
	GrossInclusive float64 `json:"gross_inclusive"`
	NetVAT         float64 `json:"net_vat"`
	NetInclusive   float64 `json:"net_inclusive"`
}

// decomposeShare computes one share's breakdown from an unrounded gross
// and an inclusive rate.
func decomposeShare(gross, rate float64) ShareBreakdown {
	g := Round(math.Max(0, gross))
	fee := FeeFromGross(gross, rate)
	net := g - fee
	return ShareBreakdown{
		Rate:           rate,
		Gross:          g,
		Fee:            fee,
		Net:            net,
		GrossVAT:       VAT(g),
		GrossInclusive: Inclusive(g),
		NetVAT:         VAT(net),
		NetInclusive:   Inclusive(net),
	}
}

// Breakdown is the three-view decomposition of one contract record.
// ExtraFixed carries a fixed-mode extra fee for display; it is excluded
// from the percentage decomposition.
type Breakdown struct {
	Total ShareBreakdown `json:"total"`
	Bank  ShareBreakdown `json:"bank"`
	Owner ShareBreakdown `json:"owner"`

	OwnerExtraFixed float64 `json:"owner_extra_fixed,omitempty"`
	BankExtraFixed  float64 `json:"bank_extra_fixed,omitempty"`
}

// Compute decomposes a contract record into the total, bank-share and
// owner-share views. The evaluation is guarded: a malformed record shape
// surfaces as a *ComputeError carrying the offending payload, never as a
// panic or a partial result.
func Compute(rec *core.ContractRecord) (b *Breakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = newComputeError(rec, r)
		}
	}()
	if rec == nil {
		return nil, newComputeError(rec, "nil contract record")
	}
	return compute(rec), nil
}

func compute(rec *core.ContractRecord) *Breakdown {
	grossTotal := rec.GrossTotal
	grossBank := rec.GrossBank
	if rec.Classification != core.FundingHousingLoanProgram {
		grossBank = 0
	}
	grossOwner := rec.DerivedGrossOwner()

	ownerRate := SideRate(rec.OwnerFees)
	bankRate := SideRate(rec.BankFees)

	b := &Breakdown{
		Total: decomposeShare(grossTotal, TotalRate(ownerRate, bankRate)),
		Bank:  decomposeShare(grossBank, bankRate),
		Owner: decomposeShare(grossOwner, ownerRate),
	}
	if rec.OwnerFees.HasFee && rec.OwnerFees.ExtraMode == core.ExtraModeFixed {
		b.OwnerExtraFixed = Round(rec.OwnerFees.ExtraValue)
	}
	if rec.BankFees.HasFee && rec.BankFees.ExtraMode == core.ExtraModeFixed {
		b.BankExtraFixed = Round(rec.BankFees.ExtraValue)
	}
	return b
}
