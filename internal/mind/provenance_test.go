package mind

import (
	"testing"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

func TestSources_RankedByFrequency(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	alice := newTestPerson("Anna", fx.place.id)
	bob := newTestPerson("Bob", fx.place.id)
	subject := newTestPerson("Carol", fx.place.id)
	model := m.ModelOf(subject)

	// Bob tells the owner twice, Anna once.
	for i := 0; i < 2; i++ {
		ev := fx.statement(t, bob, subject, domain.FeatureHairColor, 0.8)
		if err := model.ConsiderNewEvidence(domain.FeatureHairColor, "red", ev); err != nil {
			t.Fatal(err)
		}
	}
	ev := fx.statement(t, alice, subject, domain.FeatureEyeColor, 0.8)
	if err := model.ConsiderNewEvidence(domain.FeatureEyeColor, "blue", ev); err != nil {
		t.Fatal(err)
	}

	got := m.Sources(subject.EntityID(), nil)
	if len(got) != 2 {
		t.Fatalf("Sources = %d entries, want 2 (deduplicated)", len(got))
	}
	if got[0] != bob.EntityID() {
		t.Error("most frequent source should rank first")
	}
	if got[1] != alice.EntityID() {
		t.Error("remaining source missing or misordered")
	}
	if top := m.TopSource(subject.EntityID(), nil); top != bob.EntityID() {
		t.Error("TopSource should match the first ranked source")
	}
}

func TestSources_FilteredByFeature(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	alice := newTestPerson("Anna", fx.place.id)
	bob := newTestPerson("Bob", fx.place.id)
	subject := newTestPerson("Carol", fx.place.id)
	model := m.ModelOf(subject)

	hair := fx.statement(t, bob, subject, domain.FeatureHairColor, 0.8)
	if err := model.ConsiderNewEvidence(domain.FeatureHairColor, "red", hair); err != nil {
		t.Fatal(err)
	}
	eyes := fx.statement(t, alice, subject, domain.FeatureEyeColor, 0.8)
	if err := model.ConsiderNewEvidence(domain.FeatureEyeColor, "blue", eyes); err != nil {
		t.Fatal(err)
	}

	ft := domain.FeatureEyeColor
	got := m.Sources(subject.EntityID(), &ft)
	if len(got) != 1 || got[0] != alice.EntityID() {
		t.Errorf("Sources(eye color) = %v, want just Anna", got)
	}
}

func TestSources_UnknownSubject(t *testing.T) {
	fx := newFixture()
	m := fx.mind()

	if got := m.Sources(uuid.New(), nil); len(got) != 0 {
		t.Errorf("Sources of an unknown subject = %v, want none", got)
	}
	if top := m.TopSource(uuid.New(), nil); top != uuid.Nil {
		t.Errorf("TopSource of an unknown subject = %v, want Nil", top)
	}
}

func TestEvidenceAbout_DedupedAndOrdered(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	bob := newTestPerson("Bob", fx.place.id)
	subject := newTestPerson("Carol", fx.place.id)
	model := m.ModelOf(subject)

	// One statement selling two features lands in two facets but is a
	// single evidence record.
	ev, err := fx.ledger.Statement(bob, subject, fx.owner)
	if err != nil {
		t.Fatal(err)
	}
	ev.TellerStrength[domain.FeatureHairColor] = 0.8
	ev.TellerStrength[domain.FeatureEyeColor] = 0.8
	if err := model.ConsiderNewEvidence(domain.FeatureHairColor, "red", ev); err != nil {
		t.Fatal(err)
	}
	if err := model.ConsiderNewEvidence(domain.FeatureEyeColor, "blue", ev); err != nil {
		t.Fatal(err)
	}

	later := fx.statement(t, bob, subject, domain.FeatureHairColor, 0.8)
	if err := model.ConsiderNewEvidence(domain.FeatureHairColor, "red", later); err != nil {
		t.Fatal(err)
	}

	got := m.EvidenceAbout(subject.EntityID())
	if len(got) != 2 {
		t.Fatalf("EvidenceAbout = %d records, want 2 (deduplicated)", len(got))
	}
	if got[0].EventNumber >= got[1].EventNumber {
		t.Error("evidence should be ordered by event number")
	}
}
