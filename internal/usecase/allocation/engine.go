package allocation

import (
	"time"

	"invoice-financing/internal/clock"
	"invoice-financing/internal/domain/invoice"
	"invoice-financing/internal/domain/party"
)

// Outcome is the result of evaluating one invoice. Financing fields are
// only meaningful when Status is FINANCED.
type Outcome struct {
	Status            invoice.Status
	FinancierID       uint64
	FinancierName     string
	TermDays          int64
	RateBps           int64
	EarlyPaymentCents int64
	FinancingDate     time.Time
}

func (o Outcome) Financed() bool { return o.Status == invoice.StatusFinanced }

// Evaluate picks the cheapest eligible financier for inv. It has no side
// effects; today is supplied by the caller.
func Evaluate(inv *invoice.Invoice, roster *Roster, today time.Time) Outcome {
	financingDate := clock.Date(today)
	termDays := clock.DaysBetween(financingDate, inv.MaturityDate)
	out := Outcome{TermDays: termDays}

	configured := roster.candidates(inv.IssuerID)
	if len(configured) == 0 || inv.Issuer == nil {
		out.Status = invoice.StatusMissingFinanciers
		return out
	}

	var (
		best     candidate
		bestRate int64
		found    bool
	)
	for _, c := range configured {
		if int64(c.minTermDays) > termDays {
			continue
		}
		rate := ProratedRate(c.annualRateBps, termDays)
		// strict comparison keeps the lowest financier ID on ties
		if !found || rate < bestRate {
			best, bestRate, found = c, rate, true
		}
	}
	if !found {
		out.Status = invoice.StatusShortTerm
		return out
	}

	out.FinancierID = best.financierID
	out.FinancierName = best.name
	out.RateBps = bestRate
	// rows written outside party.NewIssuer may carry a ceiling above 100%
	if bestRate > int64(inv.Issuer.MaxRateBps) || bestRate > party.MaxRateCeilingBps {
		out.Status = invoice.StatusRateLimitExceeded
		return out
	}

	out.Status = invoice.StatusFinanced
	out.EarlyPaymentCents = EarlyPayment(inv.FaceValueCents, bestRate)
	out.FinancingDate = financingDate
	return out
}

// Apply writes the outcome onto inv. Failed outcomes only change the status.
func (o Outcome) Apply(inv *invoice.Invoice) {
	inv.Status = o.Status
	if !o.Financed() {
		return
	}
	financierID := o.FinancierID
	financingDate := o.FinancingDate
	termDays := o.TermDays
	rate := o.RateBps
	early := o.EarlyPaymentCents

	inv.FinancierID = &financierID
	inv.FinancingDate = &financingDate
	inv.TermDays = &termDays
	inv.RateBps = &rate
	inv.EarlyPaymentCents = &early
}
