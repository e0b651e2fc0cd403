// Package sim ties the ground-truth town to the epistemic engine and runs
// the timestep loop: routine movement, observation and reflection, social
// exchange, noise, then batched decay.
package sim

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"github.com/grapevine-sim/grapevine/internal/mind"
	"github.com/grapevine-sim/grapevine/internal/social"
	"github.com/grapevine-sim/grapevine/internal/town"
	"go.uber.org/zap"
)

type Simulation struct {
	mu sync.RWMutex

	tables    *config.Tables
	town      *town.Town
	clock     *town.Clock
	ledger    *domain.Ledger
	minds     *mind.Registry
	exchanger *social.Exchanger
	rng       *rand.Rand
	logger    *zap.Logger

	steps int
}

func New(seed int64, size int, tables *config.Tables, logger *zap.Logger) *Simulation {
	rng := rand.New(rand.NewSource(seed))
	world := town.Generate(seed, size, tables)
	clock := town.NewClock(1)
	ledger := domain.NewLedger(clock, logger)
	minds := mind.NewRegistry(tables, logger)
	exchanger := social.NewExchanger(tables, ledger, minds, clock, rng, logger)
	exchanger.SetFriendshipOracle(world)
	exchanger.SetHouseholdOracle(world)

	return &Simulation{
		tables:    tables,
		town:      world,
		clock:     clock,
		ledger:    ledger,
		minds:     minds,
		exchanger: exchanger,
		rng:       rng,
		logger:    logger,
	}
}

// Seed implants everyone's self-knowledge and backstory acquaintances.
// Run once before stepping.
func (s *Simulation) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.town.People {
		if err := s.exchanger.Reflect(p); err != nil {
			return err
		}
	}
	// Friends know each other from before the simulation starts.
	for _, p := range s.town.People {
		for _, other := range s.town.People {
			if p.ID == other.ID || !s.town.Friends(p.ID, other.ID) {
				continue
			}
			acq := social.Acquaintance{
				Subject:           other,
				TotalInteractions: 50 + s.rng.Intn(200),
				Salience:          1.0 + s.rng.Float64()*4.0,
				Close:             s.rng.Float64() < 0.3,
			}
			if err := s.exchanger.ImplantKnowledge(p, acq); err != nil {
				return err
			}
		}
	}
	return nil
}

// Step advances one timestep and runs the full protocol pass over the town.
func (s *Simulation) Step() (domain.SimTime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Advance()
	s.town.RoutineStep(s.rng, now.Part)

	for _, p := range s.town.People {
		place := s.town.Place(p.LocationID())
		present := s.town.PeopleAt(p.LocationID())
		if err := s.exchanger.Observe(p, placeSubject(place), present); err != nil {
			return now, err
		}
		if err := s.exchanger.Reflect(p); err != nil {
			return now, err
		}
	}
	for _, p := range s.town.People {
		present := s.town.PeopleAt(p.LocationID())
		if err := s.exchanger.Socialize(p, present, 1); err != nil {
			return now, err
		}
	}
	for _, p := range s.town.People {
		if err := s.exchanger.Drift(p); err != nil {
			return now, err
		}
	}

	result, err := s.minds.DecayAll(s.ledger, now)
	if err != nil {
		return now, err
	}
	s.steps++
	s.logger.Info("timestep complete",
		zap.Int("ordinal_date", now.OrdinalDate),
		zap.String("part", string(now.Part)),
		zap.Int("facets_decayed", result.FacetsDecayed),
		zap.Int("facets_forgotten", result.FacetsForgotten),
	)
	return now, nil
}

func placeSubject(p *town.Place) domain.Subject {
	if p == nil {
		return nil
	}
	return p
}

func (s *Simulation) Now() domain.SimTime {
	return s.clock.Now()
}

func (s *Simulation) Steps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps
}

func (s *Simulation) People() []*town.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.town.People
}

// ReadPeople runs fn over the ground-truth roster under the read lock, so
// routine movement in a concurrent Step cannot shift locations mid-walk.
func (s *Simulation) ReadPeople(fn func([]*town.Person)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.town.People)
}

func (s *Simulation) Person(id uuid.UUID) *town.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.town.Person(id)
}

// ReadMind runs fn against the person's mind while the simulation is held
// read-locked, so a concurrent Step cannot mutate the belief maps mid-walk.
// fn gets a name resolver valid for the same window and must not retain
// the mind past the call. Returns false when the person holds no mind.
func (s *Simulation) ReadMind(id uuid.UUID, fn func(m *mind.Mind, name domain.NameResolver)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.minds.Get(id)
	if m == nil {
		return false
	}
	fn(m, s.entityName)
	return true
}

// EntityName resolves an entity id to its ground-truth name, for
// provenance narration.
func (s *Simulation) EntityName(id uuid.UUID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entityName(id)
}

func (s *Simulation) entityName(id uuid.UUID) string {
	if p := s.town.Person(id); p != nil {
		return p.Name()
	}
	if pl := s.town.Place(id); pl != nil {
		return pl.Name()
	}
	return ""
}
