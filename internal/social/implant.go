package social

import (
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Acquaintance describes a pre-existing relationship the owner holds at
// simulation start, used to seed initial knowledge without replaying
// years of interactions.
type Acquaintance struct {
	Subject           domain.Agent
	TotalInteractions int
	Salience          float64
	Close             bool
}

// ImplantKnowledge seeds the owner's mind with beliefs about an
// acquaintance, modeled as if the acquaintance had told them directly.
// Close relations learn every feature; for everyone else each feature is
// implanted with a chance that grows with the acquaintance's salience.
func (e *Exchanger) ImplantKnowledge(owner domain.Agent, acq Acquaintance) error {
	subject := acq.Subject
	m := e.minds.MindOf(owner)
	model := m.ModelOf(subject)

	ev, err := e.ledger.Statement(subject, subject, owner)
	if err != nil {
		return err
	}

	chance := 1.0 - 1.0/max(1.01, acq.Salience)
	for _, ft := range domain.FeatureTypesFor(subject.EntityKind()) {
		if !acq.Close && e.rng.Float64() >= chance {
			continue
		}
		value := subject.FeatureValue(ft)
		if value == "" {
			continue
		}
		ev.TellerStrength[ft] = 1.0
		if err := model.ConsiderNewEvidence(ft, value, ev); err != nil {
			return err
		}
	}

	m.UpdateSalience(subject.EntityID(), acq.Salience)
	return nil
}
