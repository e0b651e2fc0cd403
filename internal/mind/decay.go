package mind

import (
	"math"

	"github.com/grapevine-sim/grapevine/internal/domain"
	"go.uber.org/zap"
)

// DecayResult summarizes one batched decay pass over a mind.
type DecayResult struct {
	FacetsDecayed   int `json:"facets_decayed"`
	FacetsForgotten int `json:"facets_forgotten"`
}

// DecayAll runs the per-timestep decay pass over every facet the owner
// holds. Strength decreases exponentially with elapsed days since the most
// recent supporting evidence, at a rate modulated by the owner's memory
// trait. A facet decaying to the floor is supplanted by an implicit
// Forgetting evidence, exactly as in the manual case. The pass is
// idempotent under zero elapsed time.
func (m *Mind) DecayAll(ledger *domain.Ledger, now domain.SimTime) (*DecayResult, error) {
	result := &DecayResult{}
	memory := m.owner.Traits().Memory
	if memory < m.tables.Traits.MemoryFloor {
		memory = m.tables.Traits.MemoryFloor
	}
	rate := m.tables.Decay.RatePerDay / memory
	floor := m.tables.Strength.Floor

	for _, f := range m.facets {
		since := f.lastTime
		if f.lastDecay.OrdinalDate > since.OrdinalDate {
			since = f.lastDecay
		}
		days := now.DaysSince(since)
		f.lastDecay = now
		if days == 0 || !f.Known() {
			continue
		}

		decayed := f.Strength * math.Exp(-rate*float64(days))
		if decayed <= floor {
			ev, err := ledger.Forgetting(m.owner, f.Subject)
			if err != nil {
				return result, err
			}
			mm := m.models[f.Subject.EntityID()]
			if err := mm.ConsiderNewEvidence(f.Feature, Unknown, ev); err != nil {
				return result, err
			}
			result.FacetsForgotten++
			m.logger.Debug("facet forgotten",
				zap.String("owner", m.owner.Name()),
				zap.String("subject", f.Subject.Name()),
				zap.String("feature", string(f.Feature)))
		} else if decayed < f.Strength {
			f.Strength = decayed
			result.FacetsDecayed++
		}
	}
	return result, nil
}
