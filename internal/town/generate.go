package town

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

var (
	maleFirstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David",
		"Richard", "Charles", "Joseph", "Thomas", "Frank", "George",
	}
	femaleFirstNames = []string{
		"Mary", "Patricia", "Linda", "Barbara", "Elizabeth", "Jennifer",
		"Maria", "Susan", "Margaret", "Dorothy", "Ruth", "Helen",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Wilson", "Anderson",
		"Taylor", "Thomas", "Moore", "Jackson", "Martin", "Lee",
	}
	hairColors  = []string{"black", "brown", "blonde", "red", "gray"}
	hairLengths = []string{"short", "medium", "long", "bald"}
	eyeColors   = []string{"brown", "blue", "green", "hazel"}
	skinColors  = []string{"light", "medium", "dark"}
	jobTitles   = []string{
		"cashier", "manager", "cook", "clerk", "barber",
		"bartender", "teacher", "doctor", "mechanic", "farmer",
	}
	streetNames = []string{
		"Main Street", "Oak Avenue", "Maple Drive", "First Street",
		"Elm Street", "Park Lane", "Second Street", "River Road",
	}
	businessNames = []string{
		"General Store", "Barber Shop", "Diner", "Bank", "Pharmacy",
		"Hardware Store", "Bakery", "Tavern",
	}
)

// Generate builds a deterministic town of n people with homes, workplaces,
// physical features, personality traits, and an initial friendship graph.
// The same seed always produces the same town.
func Generate(seed int64, n int, tables *config.Tables) *Town {
	rng := rand.New(rand.NewSource(seed))
	t := &Town{
		people:      make(map[uuid.UUID]*Person),
		places:      make(map[uuid.UUID]*Place),
		friendships: make(map[[2]uuid.UUID]bool),
	}

	businesses := generateBusinesses(rng, t)
	residences := generateResidences(rng, t, (n+2)/3)

	for i := 0; i < n; i++ {
		p := generatePerson(rng, tables)
		p.Home = residences[i%len(residences)]
		if rng.Float64() < 0.7 {
			p.Workplace = businesses[rng.Intn(len(businesses))]
			p.JobTitle = jobTitles[rng.Intn(len(jobTitles))]
			if rng.Float64() < 0.8 {
				p.JobShift = string(domain.Day)
			} else {
				p.JobShift = string(domain.Night)
			}
		}
		p.Location = p.Home
		t.People = append(t.People, p)
		t.people[p.ID] = p
	}

	// A sparse initial friendship graph; everyone gets a few friends.
	for _, p := range t.People {
		friends := 1 + rng.Intn(3)
		for j := 0; j < friends; j++ {
			other := t.People[rng.Intn(len(t.People))]
			if other.ID != p.ID {
				t.Befriend(p, other)
			}
		}
	}
	return t
}

func generatePerson(rng *rand.Rand, tables *config.Tables) *Person {
	p := &Person{ID: newUUID(rng)}
	if rng.Intn(2) == 0 {
		p.Sex = "male"
		p.FirstName = maleFirstNames[rng.Intn(len(maleFirstNames))]
		p.MiddleName = maleFirstNames[rng.Intn(len(maleFirstNames))]
	} else {
		p.Sex = "female"
		p.FirstName = femaleFirstNames[rng.Intn(len(femaleFirstNames))]
		p.MiddleName = femaleFirstNames[rng.Intn(len(femaleFirstNames))]
	}
	p.LastName = lastNames[rng.Intn(len(lastNames))]
	p.Age = 18 + rng.Intn(60)
	if rng.Float64() < 0.5 {
		p.Status = "married"
	} else {
		p.Status = "single"
	}
	p.HairColor = hairColors[rng.Intn(len(hairColors))]
	p.HairLength = hairLengths[rng.Intn(len(hairLengths))]
	p.EyeColor = eyeColors[rng.Intn(len(eyeColors))]
	p.SkinColor = skinColors[rng.Intn(len(skinColors))]
	p.Glasses = rng.Float64() < 0.3

	p.Attribute = domain.Traits{
		Memory:       clampedGaussian(rng, tables.Traits.MemoryMean, tables.Traits.MemorySD, tables.Traits.MemoryFloor, tables.Traits.MemoryCap),
		Extroversion: rng.Float64(),
		Openness:     rng.Float64(),
	}
	return p
}

func generateBusinesses(rng *rand.Rand, t *Town) []*Place {
	places := make([]*Place, 0, len(businessNames))
	for i, name := range businessNames {
		p := &Place{
			ID:        newUUID(rng),
			PlaceName: name,
			Kind:      domain.EntityBusiness,
			Address:   fmt.Sprintf("%d %s", 100+10*i, streetNames[i%len(streetNames)]),
			Block:     fmt.Sprintf("%d00 block of %s", 1+i%4, streetNames[i%len(streetNames)]),
		}
		places = append(places, p)
		t.Places = append(t.Places, p)
		t.places[p.ID] = p
	}
	return places
}

func generateResidences(rng *rand.Rand, t *Town, n int) []*Place {
	places := make([]*Place, 0, n)
	for i := 0; i < n; i++ {
		street := streetNames[rng.Intn(len(streetNames))]
		number := 100 + rng.Intn(800)
		apartment := rng.Float64() < 0.25
		name := fmt.Sprintf("%d %s", number, street)
		if apartment {
			name = fmt.Sprintf("%d %s, Unit %d", number, street, 1+rng.Intn(8))
		}
		p := &Place{
			ID:          newUUID(rng),
			PlaceName:   name,
			Kind:        domain.EntityResidence,
			Address:     name,
			Block:       fmt.Sprintf("%d00 block of %s", number/100, street),
			IsApartment: apartment,
		}
		places = append(places, p)
		t.Places = append(t.Places, p)
		t.places[p.ID] = p
	}
	return places
}

func clampedGaussian(rng *rand.Rand, mean, sd, floor, cap float64) float64 {
	v := rng.NormFloat64()*sd + mean
	if v < floor {
		return floor
	}
	if v > cap {
		return cap
	}
	return v
}

// newUUID draws identity from the town's own rng so generation stays
// deterministic per seed.
func newUUID(rng *rand.Rand) uuid.UUID {
	var b [16]byte
	rng.Read(b[:])
	id, _ := uuid.FromBytes(b[:])
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}
