package allocation

import (
	"sort"

	"invoice-financing/internal/domain/financier"
)

type candidate struct {
	financierID   uint64
	name          string
	minTermDays   int
	annualRateBps int
}

// Roster is an immutable snapshot of all financiers indexed by issuer.
// It is built once per run and assumes the whole roster fits in memory.
type Roster struct {
	byIssuer map[uint64][]candidate
	size     int
}

func NewRoster(financiers []financier.Financier) *Roster {
	r := &Roster{byIssuer: make(map[uint64][]candidate), size: len(financiers)}
	for _, f := range financiers {
		for _, c := range f.RateConfigs {
			r.byIssuer[c.IssuerID] = append(r.byIssuer[c.IssuerID], candidate{
				financierID:   f.ID,
				name:          f.Name,
				minTermDays:   f.MinTermDays,
				annualRateBps: c.AnnualRateBps,
			})
		}
	}
	// lowest financier ID first: it wins ties on the prorated rate
	for _, cs := range r.byIssuer {
		sort.SliceStable(cs, func(i, j int) bool { return cs[i].financierID < cs[j].financierID })
	}
	return r
}

// Len is the number of financiers in the snapshot.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return r.size
}

func (r *Roster) candidates(issuerID uint64) []candidate {
	if r == nil {
		return nil
	}
	return r.byIssuer[issuerID]
}
