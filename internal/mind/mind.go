package mind

import (
	"sort"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"go.uber.org/zap"
)

// Mind is the owner-exclusive collection of an agent's mental models, the
// flat facet list used for batched decay, and the salience map driving
// topic selection. No cross-owner references exist: writes to a Mind
// always originate from code paths about its owner.
type Mind struct {
	owner   domain.Agent
	tables  *config.Tables
	weigher Weigher
	logger  *zap.Logger

	models   map[uuid.UUID]*MentalModel
	facets   []*Facet
	salience map[uuid.UUID]float64
}

func New(owner domain.Agent, tables *config.Tables, logger *zap.Logger) *Mind {
	return &Mind{
		owner:    owner,
		tables:   tables,
		weigher:  NewWeigher(tables),
		logger:   logger,
		models:   make(map[uuid.UUID]*MentalModel),
		salience: make(map[uuid.UUID]float64),
	}
}

// SetWeigher swaps the evidence scoring function.
func (m *Mind) SetWeigher(w Weigher) { m.weigher = w }

func (m *Mind) Owner() domain.Agent { return m.owner }

func (m *Mind) bounds() StrengthBounds {
	return StrengthBounds{Floor: m.tables.Strength.Floor, Cap: m.tables.Strength.Cap}
}

// Model returns the mental model of the given entity, or nil if the owner
// has never formed one.
func (m *Mind) Model(entity uuid.UUID) *MentalModel {
	return m.models[entity]
}

// ModelOf returns the mental model of the subject, creating it lazily.
// Exactly one model per (owner, subject) pair ever exists.
func (m *Mind) ModelOf(subject domain.Subject) *MentalModel {
	if mm, ok := m.models[subject.EntityID()]; ok {
		return mm
	}
	mm := newMentalModel(m, subject)
	m.models[subject.EntityID()] = mm
	return mm
}

// KnownSubjects returns every entity the owner holds a model of, in no
// particular order.
func (m *Mind) KnownSubjects() []domain.Subject {
	subjects := make([]domain.Subject, 0, len(m.models))
	for _, mm := range m.models {
		subjects = append(subjects, mm.subject)
	}
	return subjects
}

// AllFacets exposes the flat facet list for the batched decay pass.
func (m *Mind) AllFacets() []*Facet { return m.facets }

// Belief returns the currently held value about an entity's feature, or
// the unknown marker. Unknown entities and features are an absence, not
// an error.
func (m *Mind) Belief(entity uuid.UUID, ft domain.FeatureType) string {
	f := m.Facet(entity, ft)
	if !f.Known() {
		return Unknown
	}
	return f.Value
}

// Facet returns the facet for (entity, feature), or nil.
func (m *Mind) Facet(entity uuid.UUID, ft domain.FeatureType) *Facet {
	mm := m.models[entity]
	if mm == nil {
		return nil
	}
	return mm.Facet(ft)
}

// AccurateBelief reports whether the owner holds a belief matching the
// entity's live ground truth. No belief at all returns false.
func (m *Mind) AccurateBelief(entity uuid.UUID, ft domain.FeatureType) bool {
	return m.Facet(entity, ft).Accurate()
}

// InaccurateBelief reports whether the owner holds a belief that is wrong.
// No belief at all returns false.
func (m *Mind) InaccurateBelief(entity uuid.UUID, ft domain.FeatureType) bool {
	f := m.Facet(entity, ft)
	return f.Known() && !f.Accurate()
}

// Salience returns how much the entity matters to the owner.
func (m *Mind) Salience(entity uuid.UUID) float64 {
	return m.salience[entity]
}

// UpdateSalience increments the owner's salience for entity, floor-clamped
// at zero.
func (m *Mind) UpdateSalience(entity uuid.UUID, delta float64) {
	s := m.salience[entity] + delta
	if s < 0 {
		s = 0
	}
	m.salience[entity] = s
}

// PeopleBelievedToWorkAt returns the people the owner believes work at the
// given company, most salient first.
func (m *Mind) PeopleBelievedToWorkAt(company domain.Subject) []domain.Subject {
	var people []domain.Subject
	for _, mm := range m.models {
		if mm.subject.EntityKind() != domain.EntityPerson {
			continue
		}
		if m.Belief(mm.subject.EntityID(), domain.FeatureWorkplace) == company.Name() {
			people = append(people, mm.subject)
		}
	}
	sort.SliceStable(people, func(i, j int) bool {
		si, sj := m.salience[people[i].EntityID()], m.salience[people[j].EntityID()]
		if si != sj {
			return si > sj
		}
		return people[i].Name() < people[j].Name()
	})
	return people
}

// MostSalientPersonAt returns the single most salient person believed to
// work at the company, or nil.
func (m *Mind) MostSalientPersonAt(company domain.Subject) domain.Subject {
	people := m.PeopleBelievedToWorkAt(company)
	if len(people) == 0 {
		return nil
	}
	return people[0]
}

// PeopleBelievedNamed returns the people the owner believes carry the
// given first name, last name, and/or sex. Empty arguments match anything.
func (m *Mind) PeopleBelievedNamed(firstName, lastName, sex string) []domain.Subject {
	var matches []domain.Subject
	for _, mm := range m.models {
		subject := mm.subject
		if subject.EntityKind() != domain.EntityPerson {
			continue
		}
		id := subject.EntityID()
		if firstName != "" && m.Belief(id, domain.FeatureFirstName) != firstName {
			continue
		}
		if lastName != "" && m.Belief(id, domain.FeatureLastName) != lastName {
			continue
		}
		if sex != "" && m.Belief(id, domain.FeatureSex) != sex {
			continue
		}
		matches = append(matches, subject)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Name() < matches[j].Name()
	})
	return matches
}
