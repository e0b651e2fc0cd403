package social

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"github.com/grapevine-sim/grapevine/internal/mind"
	"go.uber.org/zap"
)

// SalienceOfConversation is the bump a subject's salience gets for each
// participant after being talked about.
const SalienceOfConversation = 0.1

// FriendshipOracle answers whether two agents are friends. The surrounding
// simulation owns relationships; the engine only reads them for topic
// counts and instigation chances.
type FriendshipOracle interface {
	Friends(a, b uuid.UUID) bool
}

// HouseholdOracle lists an agent's home co-residents, wherever they
// currently are.
type HouseholdOracle interface {
	Housemates(id uuid.UUID) []domain.Agent
}

type pairKey [2]uuid.UUID

func newPairKey(a, b uuid.UUID) pairKey {
	if b.String() < a.String() {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Exchanger runs the transmission protocols: per qualifying social contact
// it decides what gets exchanged, constructs evidence, and feeds it into
// the listener's (and optional eavesdropper's) belief facets.
type Exchanger struct {
	tables     *config.Tables
	ledger     *domain.Ledger
	minds      *mind.Registry
	clock      domain.Clock
	rng        *rand.Rand
	friends    FriendshipOracle
	households HouseholdOracle
	logger     *zap.Logger

	lastExchange map[pairKey]domain.SimTime
}

func NewExchanger(tables *config.Tables, ledger *domain.Ledger, minds *mind.Registry, clock domain.Clock, rng *rand.Rand, logger *zap.Logger) *Exchanger {
	return &Exchanger{
		tables:       tables,
		ledger:       ledger,
		minds:        minds,
		clock:        clock,
		rng:          rng,
		logger:       logger,
		lastExchange: make(map[pairKey]domain.SimTime),
	}
}

// SetFriendshipOracle wires relationship knowledge from the surrounding
// simulation. Without one, nobody counts as friends.
func (e *Exchanger) SetFriendshipOracle(o FriendshipOracle) { e.friends = o }

// SetHouseholdOracle wires household knowledge from the surrounding
// simulation. Without one, co-residents only meet when co-located.
func (e *Exchanger) SetHouseholdOracle(o HouseholdOracle) { e.households = o }

func (e *Exchanger) areFriends(a, b domain.Agent) bool {
	return e.friends != nil && e.friends.Friends(a.EntityID(), b.EntityID())
}

// Socialize has the agent interact with the others present at its
// location. An empty room is a no-op, not an error. missingDays > 1 lets
// the low-fidelity fast-forward account for skipped timesteps; knowledge
// exchange itself only runs at full fidelity (missingDays == 1).
func (e *Exchanger) Socialize(agent domain.Agent, present []domain.Agent, missingDays int) error {
	if len(present) == 0 {
		e.logger.Debug("nobody around to socialize with", zap.String("agent", agent.Name()))
	}
	now := e.clock.Now()
	for _, other := range present {
		if other.EntityID() == agent.EntityID() {
			continue
		}
		if !e.decideToInstigate(agent, other) {
			continue
		}
		if err := e.exchangeOnce(agent, other, present, now, missingDays); err != nil {
			return err
		}
	}
	// People who live together socialize even when apart, so a night-shift
	// parent still becomes known to their kid. No instigation roll here.
	if e.households != nil {
		for _, mate := range e.households.Housemates(agent.EntityID()) {
			if err := e.exchangeOnce(agent, mate, nil, now, missingDays); err != nil {
				return err
			}
		}
	}
	return nil
}

// exchangeOnce applies the once-per-pair-per-timestep guard and the
// fidelity gate before running the conversation.
func (e *Exchanger) exchangeOnce(a, b domain.Agent, present []domain.Agent, now domain.SimTime, missingDays int) error {
	key := newPairKey(a.EntityID(), b.EntityID())
	if last, ok := e.lastExchange[key]; ok && last == now {
		return nil
	}
	e.lastExchange[key] = now
	if missingDays != 1 {
		return nil
	}
	return e.exchange(a, b, present)
}

// decideToInstigate combines the agent's extroversion with either an
// existing friendship or their openness toward strangers, clamped into
// the configured chance range.
func (e *Exchanger) decideToInstigate(agent, other domain.Agent) bool {
	chance := agent.Traits().Extroversion
	if e.areFriends(agent, other) {
		chance += e.tables.Social.FriendComponent
	} else {
		chance += agent.Traits().Openness
	}
	if chance < e.tables.Social.InstigationFloor {
		chance = e.tables.Social.InstigationFloor
	} else if chance > e.tables.Social.InstigationCap {
		chance = e.tables.Social.InstigationCap
	}
	return e.rng.Float64() < chance
}

// exchange runs one conversation between two agents: topics are the most
// salient people either knows about, and for each topic both participants
// take a turn as talker.
func (e *Exchanger) exchange(a, b domain.Agent, present []domain.Agent) error {
	for _, subject := range e.chooseTopics(a, b) {
		if err := e.exchangeAbout(a, b, subject, present); err != nil {
			return err
		}
	}
	return nil
}

// chooseTopics scores the union of both participants' known people by
// combined salience and keeps the top K, where K grows with both
// extroversions and any friendship bonus, floor-clamped.
func (e *Exchanger) chooseTopics(a, b domain.Agent) []domain.Subject {
	k := int(a.Traits().Extroversion + b.Traits().Extroversion)
	if e.areFriends(a, b) {
		k += e.tables.Conversation.FriendBonus
	}
	if k < e.tables.Conversation.TopicsFloor {
		k = e.tables.Conversation.TopicsFloor
	}

	mindA, mindB := e.minds.MindOf(a), e.minds.MindOf(b)
	seen := make(map[uuid.UUID]bool)
	type scored struct {
		subject domain.Subject
		score   float64
	}
	var candidates []scored
	for _, m := range []*mind.Mind{mindA, mindB} {
		for _, subject := range m.KnownSubjects() {
			if subject.EntityKind() != domain.EntityPerson || seen[subject.EntityID()] {
				continue
			}
			seen[subject.EntityID()] = true
			combined := mindA.Salience(subject.EntityID()) + mindB.Salience(subject.EntityID())
			candidates = append(candidates, scored{subject: subject, score: combined})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].subject.Name() < candidates[j].subject.Name()
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	topics := make([]domain.Subject, 0, len(candidates))
	for _, c := range candidates {
		topics = append(topics, c.subject)
	}
	return topics
}

// exchangeAbout exchanges knowledge about one person. Both directions run:
// each participant takes a turn as talker while the other listens. A
// statement to the listener is always paired with a declaration back to
// the talker, since the act of telling reinforces the teller's own belief.
// One random third party in earshot may eavesdrop.
func (e *Exchanger) exchangeAbout(a, b domain.Agent, subject domain.Subject, present []domain.Agent) error {
	e.minds.MindOf(a).ModelOf(subject)
	e.minds.MindOf(b).ModelOf(subject)

	for _, talker := range []domain.Agent{a, b} {
		listener := a
		if talker.EntityID() == a.EntityID() {
			listener = b
		}
		if err := e.conveyAbout(talker, listener, subject, present); err != nil {
			return err
		}
	}

	e.minds.MindOf(a).UpdateSalience(subject.EntityID(), SalienceOfConversation)
	e.minds.MindOf(b).UpdateSalience(subject.EntityID(), SalienceOfConversation)
	return nil
}

func (e *Exchanger) conveyAbout(talker, listener domain.Agent, subject domain.Subject, present []domain.Agent) error {
	talkerModel := e.minds.MindOf(talker).Model(subject.EntityID())
	if talkerModel == nil || len(talkerModel.KnownFeatures()) == 0 {
		return nil
	}

	statement, err := e.ledger.Statement(talker, subject, listener)
	if err != nil {
		return err
	}
	declaration, err := e.ledger.Declaration(talker, subject, listener)
	if err != nil {
		return err
	}

	var eavesdropping *domain.Evidence
	var eavesdropper domain.Agent
	if bystander := e.pickBystander(talker, listener, present); bystander != nil {
		if e.rng.Float64() < e.tables.Conversation.EavesdropChance {
			eavesdropping, err = e.ledger.Eavesdropping(talker, subject, listener, bystander)
			if err != nil {
				return err
			}
			eavesdropper = bystander
			e.minds.MindOf(eavesdropper).ModelOf(subject)
		}
	}

	listenerModel := e.minds.MindOf(listener).ModelOf(subject)
	declarationModel := e.minds.MindOf(talker).ModelOf(subject)

	for _, ft := range domain.FeatureTypesFor(subject.EntityKind()) {
		if e.rng.Float64() >= e.tables.Conversation.FeatureChance[ft] {
			continue
		}
		facet := talkerModel.Facet(ft)
		if !facet.Known() {
			continue
		}
		value := facet.Value
		statement.TellerStrength[ft] = facet.Strength
		declaration.TellerStrength[ft] = facet.Strength

		if err := listenerModel.ConsiderNewEvidence(ft, value, statement); err != nil {
			return err
		}
		if err := declarationModel.ConsiderNewEvidence(ft, value, declaration); err != nil {
			return err
		}
		if eavesdropping != nil {
			eavesdropping.TellerStrength[ft] = facet.Strength
			if err := e.minds.MindOf(eavesdropper).ModelOf(subject).ConsiderNewEvidence(ft, value, eavesdropping); err != nil {
				return err
			}
		}
	}
	return nil
}

// pickBystander returns a random person in earshot who is not part of the
// conversation, or nil.
func (e *Exchanger) pickBystander(talker, listener domain.Agent, present []domain.Agent) domain.Agent {
	var candidates []domain.Agent
	for _, p := range present {
		if p.EntityID() == talker.EntityID() || p.EntityID() == listener.EntityID() {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[e.rng.Intn(len(candidates))]
}
