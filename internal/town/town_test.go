package town

import (
	"testing"

	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

func TestGenerate_DeterministicPerSeed(t *testing.T) {
	tables := config.DefaultTables()
	a := Generate(42, 20, tables)
	b := Generate(42, 20, tables)

	if len(a.People) != 20 || len(b.People) != 20 {
		t.Fatalf("town sizes = %d, %d, want 20", len(a.People), len(b.People))
	}
	for i := range a.People {
		pa, pb := a.People[i], b.People[i]
		if pa.ID != pb.ID || pa.Name() != pb.Name() || pa.Attribute != pb.Attribute {
			t.Fatalf("person %d differs across identically seeded towns", i)
		}
	}

	c := Generate(43, 20, tables)
	if a.People[0].ID == c.People[0].ID {
		t.Error("different seeds should produce different towns")
	}
}

func TestGenerate_TraitsWithinBounds(t *testing.T) {
	tables := config.DefaultTables()
	town := Generate(7, 100, tables)

	for _, p := range town.People {
		mem := p.Attribute.Memory
		if mem < tables.Traits.MemoryFloor || mem > tables.Traits.MemoryCap {
			t.Errorf("%s memory %v outside [%v, %v]", p.Name(), mem, tables.Traits.MemoryFloor, tables.Traits.MemoryCap)
		}
		if p.Home == nil {
			t.Errorf("%s has no home", p.Name())
			continue
		}
		if p.LocationID() != p.Home.ID {
			t.Errorf("%s should start at home", p.Name())
		}
	}
}

func TestTown_PeopleAtAndMoveTo(t *testing.T) {
	town := Generate(7, 10, config.DefaultTables())
	p := town.People[0]
	var business *Place
	for _, pl := range town.Places {
		if pl.Kind == domain.EntityBusiness {
			business = pl
			break
		}
	}

	town.MoveTo(p, business)
	found := false
	for _, agent := range town.PeopleAt(business.ID) {
		if agent.EntityID() == p.ID {
			found = true
		}
		if agent.LocationID() != business.ID {
			t.Error("PeopleAt returned someone located elsewhere")
		}
	}
	if !found {
		t.Error("moved person not reported at destination")
	}
}

func TestTown_FriendshipIsSymmetric(t *testing.T) {
	town := Generate(7, 10, config.DefaultTables())
	a, b := town.People[0], town.People[1]
	town.Befriend(a, b)

	if !town.Friends(a.ID, b.ID) || !town.Friends(b.ID, a.ID) {
		t.Error("friendship should hold in both directions")
	}
}

func TestPerson_FeatureValuesMatchFields(t *testing.T) {
	town := Generate(7, 10, config.DefaultTables())
	for _, p := range town.People {
		if got := p.FeatureValue(domain.FeatureFirstName); got != p.FirstName {
			t.Errorf("first name feature = %q, want %q", got, p.FirstName)
		}
		if got := p.FeatureValue(domain.FeatureHomeAddress); got != p.Home.Address {
			t.Errorf("home address feature = %q, want %q", got, p.Home.Address)
		}
		if p.Workplace != nil {
			if got := p.FeatureValue(domain.FeatureWorkplace); got != p.Workplace.Name() {
				t.Errorf("workplace feature = %q, want %q", got, p.Workplace.Name())
			}
		} else if p.FeatureValue(domain.FeatureWorkplace) != "" {
			t.Error("unemployed person should have an empty workplace feature")
		}
	}
}

func TestPerson_ApproximateAgeBucketsByDecade(t *testing.T) {
	p := &Person{Age: 34}
	if got := p.ApproximateAge(); got != "30s" {
		t.Errorf("ApproximateAge = %q, want 30s", got)
	}
	p.Age = 70
	if got := p.ApproximateAge(); got != "70s" {
		t.Errorf("ApproximateAge = %q, want 70s", got)
	}
}

func TestClock_AdvanceAlternatesDayAndNight(t *testing.T) {
	clock := NewClock(1)
	if now := clock.Now(); now.OrdinalDate != 1 || now.Part != domain.Day {
		t.Fatalf("start = %+v, want day 1 (day)", now)
	}

	next := clock.Advance()
	if next.OrdinalDate != 1 || next.Part != domain.Night {
		t.Fatalf("first advance = %+v, want day 1 (night)", next)
	}
	next = clock.Advance()
	if next.OrdinalDate != 2 || next.Part != domain.Day {
		t.Fatalf("second advance = %+v, want day 2 (day)", next)
	}
}

func TestClock_EventNumbersStrictlyIncrease(t *testing.T) {
	clock := NewClock(1)
	var last uint64
	for i := 0; i < 100; i++ {
		n := clock.NextEventNumber()
		if n <= last {
			t.Fatalf("event number %d not greater than %d", n, last)
		}
		last = n
	}
}
