package social

import (
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// SalienceOfObservation is the bump a subject's salience gets each time the
// observer lays eyes on them.
const SalienceOfObservation = 0.05

// Reflect grounds an agent's beliefs about themself. Reflections are
// perfectly accurate first-hand knowledge and apply to every feature at
// once.
func (e *Exchanger) Reflect(agent domain.Agent) error {
	ev, err := e.ledger.Reflection(agent)
	if err != nil {
		return err
	}
	model := e.minds.MindOf(agent).ModelOf(agent)
	return model.BuildUp(ev)
}

// Observe has the agent take in its surroundings: the place it is at, and
// each co-present person. Each co-present person is noticed with the
// configured observation chance; the place itself is always observed.
func (e *Exchanger) Observe(agent domain.Agent, place domain.Subject, present []domain.Agent) error {
	if place != nil {
		ev, err := e.ledger.Observation(agent, place)
		if err != nil {
			return err
		}
		if err := e.minds.MindOf(agent).ModelOf(place).BuildUp(ev); err != nil {
			return err
		}
	}

	m := e.minds.MindOf(agent)
	for _, other := range present {
		if other.EntityID() == agent.EntityID() {
			continue
		}
		if e.rng.Float64() >= e.tables.Social.ObservationChance {
			continue
		}
		ev, err := e.ledger.Observation(agent, other)
		if err != nil {
			return err
		}
		if err := m.ModelOf(other).BuildUp(ev); err != nil {
			return err
		}
		m.UpdateSalience(other.EntityID(), SalienceOfObservation)
	}
	return nil
}
