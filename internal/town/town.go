package town

import (
	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Town holds the ground-truth world state: the people, the places, and who
// is friends with whom. It is the engine's collaborator, not part of the
// engine itself.
type Town struct {
	People []*Person
	Places []*Place

	people      map[uuid.UUID]*Person
	places      map[uuid.UUID]*Place
	friendships map[[2]uuid.UUID]bool
}

func (t *Town) Person(id uuid.UUID) *Person { return t.people[id] }
func (t *Town) Place(id uuid.UUID) *Place   { return t.places[id] }

// PeopleAt returns everyone currently at the given place, in town roster
// order.
func (t *Town) PeopleAt(placeID uuid.UUID) []domain.Agent {
	var present []domain.Agent
	for _, p := range t.People {
		if p.LocationID() == placeID {
			present = append(present, p)
		}
	}
	return present
}

func (t *Town) MoveTo(person *Person, place *Place) {
	person.Location = place
}

func friendKey(a, b uuid.UUID) [2]uuid.UUID {
	if b.String() < a.String() {
		a, b = b, a
	}
	return [2]uuid.UUID{a, b}
}

func (t *Town) Befriend(a, b *Person) {
	t.friendships[friendKey(a.ID, b.ID)] = true
}

// Friends reports whether two people are friends. Satisfies the exchange
// protocol's friendship oracle.
func (t *Town) Friends(a, b uuid.UUID) bool {
	return t.friendships[friendKey(a, b)]
}

// Housemates returns the other residents of the person's home, wherever
// they currently are. Satisfies the exchange protocol's household oracle.
func (t *Town) Housemates(id uuid.UUID) []domain.Agent {
	p := t.people[id]
	if p == nil || p.Home == nil {
		return nil
	}
	var mates []domain.Agent
	for _, other := range t.People {
		if other.ID != p.ID && other.Home != nil && other.Home.ID == p.Home.ID {
			mates = append(mates, other)
		}
	}
	return mates
}
