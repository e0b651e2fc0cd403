package domain

import "github.com/google/uuid"

type EntityKind string

const (
	EntityPerson    EntityKind = "person"
	EntityResidence EntityKind = "residence"
	EntityBusiness  EntityKind = "business"
)

func ValidEntityKind(k string) bool {
	switch EntityKind(k) {
	case EntityPerson, EntityResidence, EntityBusiness:
		return true
	}
	return false
}

// Traits are the owner attributes the epistemic engine reads from its
// collaborators. Memory modulates decay and first-hand evidence weight;
// extroversion and openness drive social instigation and topic counts.
type Traits struct {
	Memory       float64
	Extroversion float64
	Openness     float64
}

// Subject is anything knowledge can be held about: a person or a place.
// FeatureValue returns the live ground-truth value used for accuracy checks.
type Subject interface {
	EntityID() uuid.UUID
	Name() string
	EntityKind() EntityKind
	FeatureValue(FeatureType) string
}

// Agent is a subject that can itself hold and transmit knowledge.
type Agent interface {
	Subject
	LocationID() uuid.UUID
	Traits() Traits
}

// DayPart distinguishes the two timesteps of a simulated day.
type DayPart string

const (
	Day   DayPart = "day"
	Night DayPart = "night"
)

// SimTime is a point on the simulation calendar. Its resolution is one
// timestep; ordering of evidence within a timestep is carried by the
// global event number, not by SimTime.
type SimTime struct {
	OrdinalDate int
	Part        DayPart
}

// DaysSince returns whole elapsed days, never negative.
func (t SimTime) DaysSince(earlier SimTime) int {
	d := t.OrdinalDate - earlier.OrdinalDate
	if d < 0 {
		return 0
	}
	return d
}

// Clock is the scheduling collaborator: it provides the current simulated
// time and hands out the simulation-global monotonic event counter. Each
// evidence construction consumes exactly one event number.
type Clock interface {
	Now() SimTime
	NextEventNumber() uint64
}
