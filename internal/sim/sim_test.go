package sim

import (
	"testing"

	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"github.com/grapevine-sim/grapevine/internal/mind"
	"github.com/grapevine-sim/grapevine/internal/town"
	"go.uber.org/zap"
)

func newTestSim(t *testing.T, size int) *Simulation {
	t.Helper()
	s := New(11, size, config.DefaultTables(), zap.NewNop())
	if err := s.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

func TestSimulation_SeedImplantsSelfKnowledge(t *testing.T) {
	s := newTestSim(t, 10)

	for _, p := range s.People() {
		found := s.ReadMind(p.ID, func(m *mind.Mind, _ domain.NameResolver) {
			if !m.AccurateBelief(p.ID, domain.FeatureFirstName) {
				t.Errorf("%s should know their own first name", p.Name())
			}
		})
		if !found {
			t.Fatalf("%s has no mind after seeding", p.Name())
		}
	}
}

func TestSimulation_StepAdvancesTheClock(t *testing.T) {
	s := newTestSim(t, 10)
	start := s.Now()

	now, err := s.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if now == start {
		t.Error("clock did not advance")
	}
	if s.Steps() != 1 {
		t.Errorf("Steps = %d, want 1", s.Steps())
	}

	// Day and night alternate across steps.
	next, err := s.Step()
	if err != nil {
		t.Fatal(err)
	}
	if next.Part == now.Part {
		t.Errorf("consecutive steps share part %s", next.Part)
	}
}

func TestSimulation_KnowledgeSpreadsOverTime(t *testing.T) {
	s := newTestSim(t, 12)

	for i := 0; i < 20; i++ {
		if _, err := s.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	// After a few simulated days everyone should hold beliefs about
	// somebody other than themself.
	var withOthers int
	for _, p := range s.People() {
		s.ReadMind(p.ID, func(m *mind.Mind, _ domain.NameResolver) {
			for _, subject := range m.KnownSubjects() {
				if subject.EntityID() != p.ID {
					withOthers++
					return
				}
			}
		})
	}
	if withOthers == 0 {
		t.Error("no knowledge spread after 20 timesteps")
	}
}

func TestSimulation_ConcurrentReadsDuringStep(t *testing.T) {
	s := newTestSim(t, 10)
	p := s.People()[0]

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 10; i++ {
			if _, err := s.Step(); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	// Inspector-style walks while stepping. The race detector flags any
	// traversal that escapes the read lock.
	for i := 0; i < 200; i++ {
		s.ReadMind(p.ID, func(m *mind.Mind, name domain.NameResolver) {
			for _, subject := range m.KnownSubjects() {
				_ = m.Salience(subject.EntityID())
				_ = m.Model(subject.EntityID()).KnownFeatures()
				_ = name(subject.EntityID())
			}
		})
		s.ReadPeople(func(people []*town.Person) {
			for _, person := range people {
				_ = person.LocationID()
			}
		})
	}

	if err := <-done; err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestSimulation_EntityName(t *testing.T) {
	s := newTestSim(t, 5)
	p := s.People()[0]

	if got := s.EntityName(p.ID); got != p.Name() {
		t.Errorf("EntityName = %q, want %q", got, p.Name())
	}
	if got := s.EntityName(p.Home.ID); got != p.Home.Name() {
		t.Errorf("EntityName(place) = %q, want %q", got, p.Home.Name())
	}
}
