package mind

import (
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// DefaultSoldStrength is assumed when conveyed evidence carries no sold
// strength for the feature in question.
const DefaultSoldStrength = 0.5

// Weigher scores a piece of evidence against an existing belief. The score
// decides whether a contradiction supplants the current value, and seeds
// the strength of newly formed facets. It is pluggable so the supplanting
// formula can be tuned and tested independently of the aggregation.
type Weigher func(ev *domain.Evidence, ft domain.FeatureType, owner domain.Agent) float64

// NewWeigher builds the default formula: the kind's trust multiplier,
// scaled for conveyed evidence by the strength the teller sold (a lie
// carries its sold confidence, not the teller's real one), and for
// first-hand evidence by the owner's memory trait.
func NewWeigher(t *config.Tables) Weigher {
	return func(ev *domain.Evidence, ft domain.FeatureType, owner domain.Agent) float64 {
		trust, ok := t.Trust[ev.Kind]
		if !ok {
			trust = DefaultSoldStrength
		}
		if ev.Kind.Conveyed() {
			sold, ok := ev.TellerStrength[ft]
			if !ok {
				sold = DefaultSoldStrength
			}
			return trust * sold
		}
		return trust * owner.Traits().Memory
	}
}
