package social

import (
	"testing"

	"github.com/grapevine-sim/grapevine/internal/domain"
)

func TestImplantKnowledge_CloseAcquaintanceLearnsEverything(t *testing.T) {
	fx := newFixture(certainTables())
	owner := newTestPerson("Alice", fx.place)
	friend := newTestPerson("Bob", fx.place)

	acq := Acquaintance{Subject: friend, TotalInteractions: 500, Salience: 3.0, Close: true}
	if err := fx.exchanger.ImplantKnowledge(owner, acq); err != nil {
		t.Fatal(err)
	}

	m := fx.minds.Get(owner.EntityID())
	for _, ft := range []domain.FeatureType{domain.FeatureFirstName, domain.FeatureHairColor, domain.FeatureEyeColor} {
		if !m.AccurateBelief(friend.EntityID(), ft) {
			t.Errorf("close acquaintance should know %s accurately", ft)
		}
	}
	if m.Salience(friend.EntityID()) != 3.0 {
		t.Errorf("Salience = %v, want seeded 3.0", m.Salience(friend.EntityID()))
	}

	// Implanted knowledge traces back to the acquaintance themself.
	sources := m.Sources(friend.EntityID(), nil)
	if len(sources) != 1 || sources[0] != friend.EntityID() {
		t.Errorf("sources = %v, want just the acquaintance", sources)
	}
}

func TestImplantKnowledge_DistantAcquaintanceLearnsLittle(t *testing.T) {
	fx := newFixture(certainTables())
	owner := newTestPerson("Alice", fx.place)
	stranger := newTestPerson("Bob", fx.place)

	// Salience barely above the floor: implant chance near zero.
	acq := Acquaintance{Subject: stranger, TotalInteractions: 1, Salience: 0.1, Close: false}
	if err := fx.exchanger.ImplantKnowledge(owner, acq); err != nil {
		t.Fatal(err)
	}

	m := fx.minds.Get(owner.EntityID())
	model := m.Model(stranger.EntityID())
	if model == nil {
		t.Fatal("implanting should still register the acquaintance")
	}
	if known := len(model.KnownFeatures()); known > 3 {
		t.Errorf("distant acquaintance knows %d features, want almost none at near-zero chance", known)
	}
}
