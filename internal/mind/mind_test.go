package mind

import (
	"testing"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"go.uber.org/zap"
)

// fakeClock hands out event numbers deterministically for tests.
type fakeClock struct {
	now    domain.SimTime
	events uint64
}

func (c *fakeClock) Now() domain.SimTime { return c.now }

func (c *fakeClock) NextEventNumber() uint64 {
	c.events++
	return c.events
}

// testPerson implements domain.Agent with ground-truth feature values.
type testPerson struct {
	id       uuid.UUID
	name     string
	location uuid.UUID
	traits   domain.Traits
	features map[domain.FeatureType]string
}

func newTestPerson(name string, location uuid.UUID) *testPerson {
	return &testPerson{
		id:       uuid.New(),
		name:     name,
		location: location,
		traits:   domain.Traits{Memory: 0.7, Extroversion: 0.5, Openness: 0.5},
		features: map[domain.FeatureType]string{
			domain.FeatureFirstName: name,
			domain.FeatureHairColor: "brown",
			domain.FeatureEyeColor:  "blue",
		},
	}
}

func (p *testPerson) EntityID() uuid.UUID { return p.id }
func (p *testPerson) Name() string { return p.name }
func (p *testPerson) EntityKind() domain.EntityKind { return domain.EntityPerson }
func (p *testPerson) LocationID() uuid.UUID { return p.location }
func (p *testPerson) Traits() domain.Traits { return p.traits }

func (p *testPerson) FeatureValue(ft domain.FeatureType) string { return p.features[ft] }

type testPlace struct {
	id   uuid.UUID
	name string
}

func newTestPlace(name string) *testPlace {
	return &testPlace{id: uuid.New(), name: name}
}

func (p *testPlace) EntityID() uuid.UUID { return p.id }
func (p *testPlace) Name() string { return p.name }
func (p *testPlace) EntityKind() domain.EntityKind { return domain.EntityBusiness }
func (p *testPlace) FeatureValue(ft domain.FeatureType) string { return "" }

type fixture struct {
	tables *config.Tables
	clock  *fakeClock
	ledger *domain.Ledger
	place  *testPlace
	owner  *testPerson
}

func newFixture() *fixture {
	place := newTestPlace("diner")
	clock := &fakeClock{now: domain.SimTime{OrdinalDate: 100, Part: domain.Day}}
	return &fixture{
		tables: config.DefaultTables(),
		clock:  clock,
		ledger: domain.NewLedger(clock, zap.NewNop()),
		place:  place,
		owner:  newTestPerson("Alice", place.id),
	}
}

func (fx *fixture) mind() *Mind {
	return New(fx.owner, fx.tables, zap.NewNop())
}

// statement builds a statement from teller to the fixture owner selling
// one feature at the given strength.
func (fx *fixture) statement(t *testing.T, teller *testPerson, subject domain.Subject, ft domain.FeatureType, sold float64) *domain.Evidence {
	t.Helper()
	ev, err := fx.ledger.Statement(teller, subject, fx.owner)
	if err != nil {
		t.Fatalf("Statement: %v", err)
	}
	ev.TellerStrength[ft] = sold
	return ev
}

func TestMind_BeliefRoundTrip(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	teller := newTestPerson("Bob", fx.place.id)
	subject := newTestPerson("Carol", fx.place.id)

	ev := fx.statement(t, teller, subject, domain.FeatureHairColor, 0.8)
	if err := m.ModelOf(subject).ConsiderNewEvidence(domain.FeatureHairColor, "red", ev); err != nil {
		t.Fatalf("ConsiderNewEvidence: %v", err)
	}

	if got := m.Belief(subject.EntityID(), domain.FeatureHairColor); got != "red" {
		t.Errorf("Belief = %q, want %q", got, "red")
	}
	if m.Belief(subject.EntityID(), domain.FeatureEyeColor) != Unknown {
		t.Error("unheard feature should be unknown")
	}
	if m.Belief(uuid.New(), domain.FeatureHairColor) != Unknown {
		t.Error("unknown subject should yield the unknown marker")
	}
}

func TestMind_AccurateAndInaccurateBelief(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	teller := newTestPerson("Bob", fx.place.id)
	subject := newTestPerson("Carol", fx.place.id) // ground truth hair: brown

	ev := fx.statement(t, teller, subject, domain.FeatureHairColor, 0.8)
	if err := m.ModelOf(subject).ConsiderNewEvidence(domain.FeatureHairColor, "red", ev); err != nil {
		t.Fatal(err)
	}
	if !m.InaccurateBelief(subject.EntityID(), domain.FeatureHairColor) {
		t.Error("belief contradicting ground truth should be inaccurate")
	}

	ev2 := fx.statement(t, teller, subject, domain.FeatureEyeColor, 0.8)
	if err := m.ModelOf(subject).ConsiderNewEvidence(domain.FeatureEyeColor, "blue", ev2); err != nil {
		t.Fatal(err)
	}
	if !m.AccurateBelief(subject.EntityID(), domain.FeatureEyeColor) {
		t.Error("belief matching ground truth should be accurate")
	}

	// Holding no belief is neither accurate nor inaccurate.
	if m.AccurateBelief(subject.EntityID(), domain.FeatureFirstName) {
		t.Error("absent belief must not count as accurate")
	}
	if m.InaccurateBelief(subject.EntityID(), domain.FeatureFirstName) {
		t.Error("absent belief must not count as inaccurate")
	}
}

func TestMind_SalienceFloorsAtZero(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	id := uuid.New()

	m.UpdateSalience(id, 0.4)
	if got := m.Salience(id); got != 0.4 {
		t.Fatalf("Salience = %v, want 0.4", got)
	}
	m.UpdateSalience(id, -2.0)
	if got := m.Salience(id); got != 0 {
		t.Errorf("Salience = %v, want 0 after large decrement", got)
	}
	if m.Salience(uuid.New()) != 0 {
		t.Error("untracked entity should have zero salience")
	}
}

func TestMind_PeopleBelievedToWorkAt(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	teller := newTestPerson("Bob", fx.place.id)
	carol := newTestPerson("Carol", fx.place.id)
	dave := newTestPerson("Dave", fx.place.id)
	company := newTestPlace("General Store")

	for _, subject := range []*testPerson{carol, dave} {
		ev := fx.statement(t, teller, subject, domain.FeatureWorkplace, 0.8)
		if err := m.ModelOf(subject).ConsiderNewEvidence(domain.FeatureWorkplace, company.Name(), ev); err != nil {
			t.Fatal(err)
		}
	}
	m.UpdateSalience(dave.EntityID(), 1.0)

	got := m.PeopleBelievedToWorkAt(company)
	if len(got) != 2 {
		t.Fatalf("got %d believed employees, want 2", len(got))
	}
	if got[0].EntityID() != dave.EntityID() {
		t.Error("higher-salience person should rank first")
	}

	if top := m.MostSalientPersonAt(company); top == nil || top.EntityID() != dave.EntityID() {
		t.Error("MostSalientPersonAt should return the top-ranked employee")
	}
}

func TestMind_PeopleBelievedNamed(t *testing.T) {
	fx := newFixture()
	m := fx.mind()
	teller := newTestPerson("Bob", fx.place.id)
	carol := newTestPerson("Carol", fx.place.id)

	model := m.ModelOf(carol)
	first := fx.statement(t, teller, carol, domain.FeatureFirstName, 0.8)
	if err := model.ConsiderNewEvidence(domain.FeatureFirstName, "Carol", first); err != nil {
		t.Fatal(err)
	}
	last := fx.statement(t, teller, carol, domain.FeatureLastName, 0.8)
	if err := model.ConsiderNewEvidence(domain.FeatureLastName, "Smith", last); err != nil {
		t.Fatal(err)
	}

	got := m.PeopleBelievedNamed("Carol", "Smith", "")
	if len(got) != 1 || got[0].EntityID() != carol.EntityID() {
		t.Errorf("PeopleBelievedNamed = %v, want [Carol]", got)
	}
	if got := m.PeopleBelievedNamed("Dave", "Smith", ""); len(got) != 0 {
		t.Errorf("PeopleBelievedNamed with wrong first name = %v, want none", got)
	}
}
