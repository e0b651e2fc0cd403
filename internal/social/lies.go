package social

import (
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// TellLie has the liar convey a deliberately false value for one feature of
// the subject to the listener. The lie carries whatever strength the liar
// chooses to sell it at; unlike honest statements it produces no paired
// declaration, since the liar does not believe what they say.
func (e *Exchanger) TellLie(liar, listener domain.Agent, subject domain.Subject, ft domain.FeatureType, value string, soldStrength float64) error {
	lie, err := e.ledger.Lie(liar, subject, listener)
	if err != nil {
		return err
	}
	lie.TellerStrength[ft] = soldStrength

	model := e.minds.MindOf(listener).ModelOf(subject)
	return model.ConsiderNewEvidence(ft, value, lie)
}
