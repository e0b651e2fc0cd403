package mind

import (
	"fmt"

	"github.com/grapevine-sim/grapevine/internal/domain"
)

// MentalModel bundles every facet one owner holds about one subject. It is
// created lazily on first evidence about the subject and never duplicated:
// exactly one model per (owner, subject) pair, owned exclusively by the
// owner's Mind. The subject holds no back-pointer.
type MentalModel struct {
	mind    *Mind
	subject domain.Subject
	facets  map[domain.FeatureType]*Facet
}

func newMentalModel(m *Mind, subject domain.Subject) *MentalModel {
	return &MentalModel{
		mind:    m,
		subject: subject,
		facets:  make(map[domain.FeatureType]*Facet),
	}
}

func (mm *MentalModel) Subject() domain.Subject { return mm.subject }

// Facet returns the current facet for the feature, or nil if no evidence
// has ever established one.
func (mm *MentalModel) Facet(ft domain.FeatureType) *Facet {
	return mm.facets[ft]
}

// GetOrCreateFacet returns the facet for the feature, creating an empty
// unknown-valued one if none exists yet.
func (mm *MentalModel) GetOrCreateFacet(ft domain.FeatureType) *Facet {
	if f, ok := mm.facets[ft]; ok {
		return f
	}
	f := newFacet(mm.mind.owner.EntityID(), mm.subject, ft)
	f.Strength = mm.mind.bounds().Floor
	mm.facets[ft] = f
	mm.mind.facets = append(mm.mind.facets, f)
	return f
}

// ConsiderNewEvidence aggregates one piece of evidence proposing a value
// for one feature. Matching values reinforce; conflicting values supplant
// only when the new evidence outweighs the current strength, and are
// otherwise logged into the history with the old belief persisting,
// slightly weakened. Forgetting evidence always supplants to the unknown
// marker, freezing the pre-forgetting strength for later reconciliation.
func (mm *MentalModel) ConsiderNewEvidence(ft domain.FeatureType, value string, ev *domain.Evidence) error {
	if ev == nil {
		return &domain.ContractError{Kind: "", Reason: "nil evidence"}
	}
	if ev.Kind == domain.KindForgetting && value != Unknown {
		return &domain.ContractError{
			Kind:   domain.KindForgetting,
			Reason: fmt.Sprintf("forgetting evidence may only support the unknown marker, got %q", value),
		}
	}
	if !domain.ValidFeatureType(mm.subject.EntityKind(), ft) {
		return &domain.ContractError{
			Kind:   ev.Kind,
			Reason: fmt.Sprintf("feature %q does not apply to a %s", ft, mm.subject.EntityKind()),
		}
	}

	bounds := mm.mind.bounds()
	weight := bounds.Clamp(mm.mind.weigher(ev, ft, mm.mind.owner))

	f, exists := mm.facets[ft]
	if !exists || len(f.Evidence) == 0 {
		f = mm.GetOrCreateFacet(ft)
		f.Value = value
		f.Strength = weight
		f.support(value, ev)
		f.lastDecay = ev.Time
		return nil
	}

	switch {
	case ev.Kind == domain.KindForgetting:
		f.supplant(Unknown, weight, ev, bounds)
	case value == f.Value:
		// Corroboration strengthens confidence with diminishing returns
		// toward the cap.
		f.Strength = bounds.Clamp(f.Strength + mm.mind.tables.Strength.ReinforcementBoost*weight*(bounds.Cap-f.Strength))
		f.support(value, ev)
	case f.Value == Unknown:
		// The owner holds no value, so even a faint reminder reinstates
		// one, reconciled against any frozen strength for that value.
		f.supplant(value, weight, ev, bounds)
	case weight > f.Strength:
		f.supplant(value, weight, ev, bounds)
	default:
		// Contradiction too weak to supplant: log it, keep the old belief,
		// weaken it a little.
		f.Evidence = append(f.Evidence, ev)
		f.Strength = bounds.Clamp(f.Strength - mm.mind.tables.Strength.ContradictionPenalty)
	}
	return nil
}

// BuildUp routes a reflection or observation to every feature type it
// touches, ingesting the subject's live ground-truth values.
func (mm *MentalModel) BuildUp(ev *domain.Evidence) error {
	if ev.Kind != domain.KindReflection && ev.Kind != domain.KindObservation {
		return &domain.ContractError{
			Kind:   ev.Kind,
			Reason: "only reflections and observations build up a whole mental model",
		}
	}
	for _, ft := range domain.FeatureTypesFor(mm.subject.EntityKind()) {
		if err := mm.ConsiderNewEvidence(ft, mm.subject.FeatureValue(ft), ev); err != nil {
			return err
		}
	}
	return nil
}

// Employees returns, for a business subject, the people the owner believes
// work there, ordered by salience.
func (mm *MentalModel) Employees() []domain.Subject {
	if mm.subject.EntityKind() != domain.EntityBusiness {
		return nil
	}
	return mm.mind.PeopleBelievedToWorkAt(mm.subject)
}

// KnownFeatures returns the feature types currently holding a value.
func (mm *MentalModel) KnownFeatures() []domain.FeatureType {
	var known []domain.FeatureType
	for _, ft := range domain.FeatureTypesFor(mm.subject.EntityKind()) {
		if mm.facets[ft].Known() {
			known = append(known, ft)
		}
	}
	return known
}
