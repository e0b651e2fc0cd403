package mind

import (
	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Unknown is the empty marker a facet holds when its owner has forgotten
// (or never held) a value. Forgetting evidence may only support this marker.
const Unknown = ""

// Facet is the aggregation unit for one (owner, subject, feature) key: the
// currently asserted value, a strength score derived from its supporting
// evidence, and the full append-only evidence history. Provenance is
// permanent; superseded evidence is never pruned.
type Facet struct {
	Owner    uuid.UUID
	Subject  domain.Subject
	Feature  domain.FeatureType
	Value    string
	Strength float64
	Evidence []*domain.Evidence

	// lastSupport tracks, per asserted value, the most recent evidence
	// record that supported it while current. Supplanting stamps the
	// outgoing strength onto that record for provenance inspection.
	lastSupport map[string]*domain.Evidence

	// frozen holds, per superseded value, the strength it carried when it
	// was last supplanted. An evidence record can back several facets at
	// once, so the reconciliation seed lives here rather than on the
	// shared record.
	frozen map[string]float64

	lastTime  domain.SimTime // most recent supporting evidence
	lastDecay domain.SimTime
}

func newFacet(owner uuid.UUID, subject domain.Subject, ft domain.FeatureType) *Facet {
	return &Facet{
		Owner:       owner,
		Subject:     subject,
		Feature:     ft,
		Value:       Unknown,
		lastSupport: make(map[string]*domain.Evidence),
		frozen:      make(map[string]float64),
	}
}

// Known reports whether the facet currently asserts a value.
func (f *Facet) Known() bool {
	return f != nil && f.Value != Unknown
}

// Accurate compares the asserted value against the subject's live ground
// truth. Holding no belief is inaccurate-free: it returns false, never an
// error.
func (f *Facet) Accurate() bool {
	if !f.Known() {
		return false
	}
	return f.Value == f.Subject.FeatureValue(f.Feature)
}

func (f *Facet) support(value string, ev *domain.Evidence) {
	f.Evidence = append(f.Evidence, ev)
	f.lastSupport[value] = ev
	f.lastTime = ev.Time
}

// supplant replaces the current value. The outgoing strength is frozen
// per value on the facet, and stamped onto the last record that supported
// it; the incoming strength is seeded from a previously frozen strength
// when the new value matches one, so that remembering beats relearning.
func (f *Facet) supplant(value string, weight float64, ev *domain.Evidence, bounds StrengthBounds) {
	if f.Value != Unknown {
		f.frozen[f.Value] = f.Strength
		if cur := f.lastSupport[f.Value]; cur != nil {
			s := f.Strength
			cur.AdjustedStrength = &s
		}
	}
	seed := weight
	if prior, ok := f.frozen[value]; ok && prior > seed {
		seed = prior
	}
	f.Value = value
	f.Strength = bounds.Clamp(seed)
	f.support(value, ev)
}

// StrengthBounds clamp every strength write into [Floor, Cap].
type StrengthBounds struct {
	Floor, Cap float64
}

func (b StrengthBounds) Clamp(v float64) float64 {
	if v < b.Floor {
		return b.Floor
	}
	if v > b.Cap {
		return b.Cap
	}
	return v
}
