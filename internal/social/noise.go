package social

import (
	"github.com/grapevine-sim/grapevine/internal/domain"
	"github.com/grapevine-sim/grapevine/internal/mind"
)

// Drift applies the involuntary noise processes to one agent's mind:
// mutation (a belief spontaneously shifts to a similar value), transference
// (a belief about one person bleeds onto another), and confabulation (a
// value gets invented for a feature the agent holds no belief about).
// Noise evidence is weak by configuration, so it only overturns beliefs
// that were barely held to begin with.
func (e *Exchanger) Drift(agent domain.Agent) error {
	m := e.minds.MindOf(agent)

	for _, f := range m.AllFacets() {
		if !f.Known() {
			continue
		}
		roll := e.rng.Float64()
		switch {
		case roll < e.tables.Noise.MutationChance:
			if err := e.mutate(agent, m, f); err != nil {
				return err
			}
		case roll < e.tables.Noise.MutationChance+e.tables.Noise.TransferenceChance:
			if err := e.transfer(agent, m, f); err != nil {
				return err
			}
		}
	}

	return e.confabulate(agent, m)
}

// mutate replaces a belief with a different value drawn from the owner's
// beliefs for the same feature across other subjects. With no alternative
// in the pool, nothing happens.
func (e *Exchanger) mutate(agent domain.Agent, m *mind.Mind, f *mind.Facet) error {
	pool := e.valuePool(m, f.Feature, f.Value)
	if len(pool) == 0 {
		return nil
	}
	mutated := pool[e.rng.Intn(len(pool))]

	ev, err := e.ledger.Mutation(agent, f.Subject)
	if err != nil {
		return err
	}
	return m.ModelOf(f.Subject).ConsiderNewEvidence(f.Feature, mutated, ev)
}

// transfer bleeds a belief held about another subject of the same kind
// onto this one, recording where the value came from.
func (e *Exchanger) transfer(agent domain.Agent, m *mind.Mind, f *mind.Facet) error {
	donor := e.pickDonorFacet(m, f)
	if donor == nil {
		return nil
	}
	from := domain.FacetRef{Subject: donor.Subject.EntityID(), Feature: donor.Feature}
	ev, err := e.ledger.Transference(agent, f.Subject, from)
	if err != nil {
		return err
	}
	return m.ModelOf(f.Subject).ConsiderNewEvidence(f.Feature, donor.Value, ev)
}

// confabulate fills in random unknown facets with values plucked from the
// owner's beliefs about other subjects.
func (e *Exchanger) confabulate(agent domain.Agent, m *mind.Mind) error {
	for _, subject := range m.KnownSubjects() {
		model := m.Model(subject.EntityID())
		if model == nil {
			continue
		}
		for _, ft := range domain.FeatureTypesFor(subject.EntityKind()) {
			facet := model.Facet(ft)
			if facet != nil && facet.Known() {
				continue
			}
			if e.rng.Float64() >= e.tables.Noise.ConfabulationChance {
				continue
			}
			pool := e.valuePool(m, ft, mind.Unknown)
			if len(pool) == 0 {
				continue
			}
			invented := pool[e.rng.Intn(len(pool))]
			ev, err := e.ledger.Confabulation(agent, subject)
			if err != nil {
				return err
			}
			if err := model.ConsiderNewEvidence(ft, invented, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// valuePool collects the distinct values the owner believes for a feature
// across all subjects, excluding one value.
func (e *Exchanger) valuePool(m *mind.Mind, ft domain.FeatureType, except string) []string {
	seen := make(map[string]bool)
	var pool []string
	for _, f := range m.AllFacets() {
		if f.Feature != ft || !f.Known() || f.Value == except || seen[f.Value] {
			continue
		}
		seen[f.Value] = true
		pool = append(pool, f.Value)
	}
	return pool
}

// pickDonorFacet finds a known facet for the same feature held about a
// different subject of the same kind, preferring one at random.
func (e *Exchanger) pickDonorFacet(m *mind.Mind, f *mind.Facet) *mind.Facet {
	var candidates []*mind.Facet
	for _, other := range m.AllFacets() {
		if other.Feature != f.Feature || !other.Known() {
			continue
		}
		if other.Subject.EntityID() == f.Subject.EntityID() {
			continue
		}
		if other.Subject.EntityKind() != f.Subject.EntityKind() {
			continue
		}
		candidates = append(candidates, other)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[e.rng.Intn(len(candidates))]
}
