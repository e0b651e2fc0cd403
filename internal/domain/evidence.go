package domain

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EvidenceKind string

const (
	KindReflection    EvidenceKind = "reflection"
	KindObservation   EvidenceKind = "observation"
	KindConfabulation EvidenceKind = "confabulation"
	KindLie           EvidenceKind = "lie"
	KindStatement     EvidenceKind = "statement"
	KindDeclaration   EvidenceKind = "declaration"
	KindEavesdropping EvidenceKind = "eavesdropping"
	KindMutation      EvidenceKind = "mutation"
	KindTransference  EvidenceKind = "transference"
	KindForgetting    EvidenceKind = "forgetting"
)

// Conveyed reports whether this kind carries knowledge from a source to a
// recipient, as opposed to arising inside a single mind.
func (k EvidenceKind) Conveyed() bool {
	switch k {
	case KindLie, KindStatement, KindDeclaration, KindEavesdropping:
		return true
	}
	return false
}

// ContractError reports structurally invalid evidence. It indicates a bug
// in the calling simulation, not a runtime condition to recover from.
type ContractError struct {
	Kind   EvidenceKind
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("evidence contract violation (%s): %s", e.Kind, e.Reason)
}

// FacetRef identifies a belief facet without owning it. Transference
// evidence records the facet whose value was mistakenly cross-applied.
type FacetRef struct {
	Subject uuid.UUID
	Feature FeatureType
}

// Evidence is an immutable record of one instance of perceiving, stating,
// or forgetting a fact. Once constructed, the only field ever written is
// AdjustedStrength, set post-hoc when the evidence's belief is supplanted
// so a later matching belief can be reconciled instead of relearned.
type Evidence struct {
	ID           uuid.UUID
	Kind         EvidenceKind
	Subject      uuid.UUID
	Source       uuid.UUID
	Recipient    uuid.UUID // lie, statement, declaration, eavesdropping
	Eavesdropper uuid.UUID // eavesdropping only

	TransferredFrom *FacetRef // transference only

	Location    uuid.UUID
	Time        SimTime
	EventNumber uint64

	// TellerStrength maps each feature conveyed under this evidence to the
	// strength the teller sold it at. For a lie this is the sold confidence,
	// not the teller's true confidence.
	TellerStrength map[FeatureType]float64

	AdjustedStrength *float64
}

// Ledger constructs evidence records, stamping provenance from the source
// agent and consuming one event number per record from the global clock.
type Ledger struct {
	clock  Clock
	logger *zap.Logger
}

func NewLedger(clock Clock, logger *zap.Logger) *Ledger {
	return &Ledger{clock: clock, logger: logger}
}

// reject logs a contract violation before handing it back. Violations
// mean a bug in the calling simulation, so they are worth a trace even
// when the caller drops the error.
func (l *Ledger) reject(err *ContractError) (*Evidence, error) {
	l.logger.Warn("evidence rejected",
		zap.String("kind", string(err.Kind)),
		zap.String("reason", err.Reason))
	return nil, err
}

func (l *Ledger) record(kind EvidenceKind, subject Subject, source Agent) *Evidence {
	ev := &Evidence{
		ID:          uuid.New(),
		Kind:        kind,
		Subject:     subject.EntityID(),
		Source:      source.EntityID(),
		Location:    source.LocationID(),
		Time:        l.clock.Now(),
		EventNumber: l.clock.NextEventNumber(),
	}
	if kind.Conveyed() {
		ev.TellerStrength = make(map[FeatureType]float64)
	}
	return ev
}

// Reflection records a person perceiving something about themself.
func (l *Ledger) Reflection(source Agent) (*Evidence, error) {
	return l.record(KindReflection, source, source), nil
}

// Observation records first-hand perception of a co-located entity.
func (l *Ledger) Observation(source Agent, subject Subject) (*Evidence, error) {
	if subject.EntityKind() == EntityPerson {
		sub, ok := subject.(Agent)
		if !ok || sub.LocationID() != source.LocationID() {
			return l.reject(&ContractError{
				Kind:   KindObservation,
				Reason: fmt.Sprintf("%s attempted to observe %s, who is in a different location", source.Name(), subject.Name()),
			})
		}
	} else if source.LocationID() != subject.EntityID() {
		return l.reject(&ContractError{
			Kind:   KindObservation,
			Reason: fmt.Sprintf("%s attempted to observe %s, but they are not located there", source.Name(), subject.Name()),
		})
	}
	return l.record(KindObservation, subject, source), nil
}

// Confabulation records a person unintentionally concocting false
// knowledge where none, or only a forgotten value, was held.
func (l *Ledger) Confabulation(source Agent, subject Subject) (*Evidence, error) {
	ev := l.record(KindConfabulation, subject, source)
	return ev, nil
}

// Statement records one person conveying knowledge they believe true.
func (l *Ledger) Statement(source Agent, subject Subject, recipient Agent) (*Evidence, error) {
	ev := l.record(KindStatement, subject, source)
	ev.Recipient = recipient.EntityID()
	return ev, nil
}

// Lie records one person conveying knowledge they know to be false.
func (l *Ledger) Lie(source Agent, subject Subject, recipient Agent) (*Evidence, error) {
	ev := l.record(KindLie, subject, source)
	ev.Recipient = recipient.EntityID()
	return ev, nil
}

// Declaration records the teller's own side of a statement: the act of
// telling reinforces the teller's belief.
func (l *Ledger) Declaration(source Agent, subject Subject, recipient Agent) (*Evidence, error) {
	ev := l.record(KindDeclaration, subject, source)
	ev.Recipient = recipient.EntityID()
	return ev, nil
}

// Eavesdropping records a third party overhearing a statement or lie.
func (l *Ledger) Eavesdropping(source Agent, subject Subject, recipient Agent, eavesdropper Agent) (*Evidence, error) {
	if eavesdropper.EntityID() == source.EntityID() || eavesdropper.EntityID() == recipient.EntityID() {
		return l.reject(&ContractError{
			Kind:   KindEavesdropping,
			Reason: fmt.Sprintf("%s cannot eavesdrop on a conversation they are part of", eavesdropper.Name()),
		})
	}
	ev := l.record(KindEavesdropping, subject, source)
	ev.Recipient = recipient.EntityID()
	ev.Eavesdropper = eavesdropper.EntityID()
	return ev, nil
}

// Mutation records spontaneous misremembering of a held value.
func (l *Ledger) Mutation(source Agent, subject Subject) (*Evidence, error) {
	return l.record(KindMutation, subject, source), nil
}

// Transference records another subject's believed attribute being
// mistakenly applied to this subject.
func (l *Ledger) Transference(source Agent, subject Subject, from FacetRef) (*Evidence, error) {
	if from.Subject == subject.EntityID() {
		return l.reject(&ContractError{
			Kind:   KindTransference,
			Reason: "transference must originate from a different subject's facet",
		})
	}
	ev := l.record(KindTransference, subject, source)
	ev.TransferredFrom = &from
	return ev, nil
}

// Forgetting records knowledge deteriorating past recall. Forgetting
// evidence may only ever support a facet holding the unknown marker.
func (l *Ledger) Forgetting(source Agent, subject Subject) (*Evidence, error) {
	return l.record(KindForgetting, subject, source), nil
}

// NameResolver maps an entity ID to its display name for provenance lines.
type NameResolver func(uuid.UUID) string

// Describe renders a human-readable provenance line for an evidence
// record, dispatched on its kind.
func Describe(ev *Evidence, name NameResolver) string {
	at := fmt.Sprintf("at %s on day %d (%s)", name(ev.Location), ev.Time.OrdinalDate, ev.Time.Part)
	switch ev.Kind {
	case KindEavesdropping:
		return fmt.Sprintf("%s's eavesdropping of %s's statement to %s about %s %s",
			name(ev.Eavesdropper), name(ev.Source), name(ev.Recipient), name(ev.Subject), at)
	case KindStatement:
		return fmt.Sprintf("%s's statement to %s about %s %s",
			name(ev.Source), name(ev.Recipient), name(ev.Subject), at)
	case KindDeclaration:
		return fmt.Sprintf("%s's own statement (declaration) to %s about %s %s",
			name(ev.Source), name(ev.Recipient), name(ev.Subject), at)
	case KindLie:
		return fmt.Sprintf("%s's lie to %s about %s %s",
			name(ev.Source), name(ev.Recipient), name(ev.Subject), at)
	case KindReflection:
		return fmt.Sprintf("%s's reflection about themself %s", name(ev.Source), at)
	case KindObservation:
		return fmt.Sprintf("%s's observation of %s %s", name(ev.Source), name(ev.Subject), at)
	case KindConfabulation:
		return fmt.Sprintf("%s's confabulation about %s %s", name(ev.Source), name(ev.Subject), at)
	case KindMutation:
		return fmt.Sprintf("%s's mutation of their mental model of %s %s",
			name(ev.Source), name(ev.Subject), at)
	case KindTransference:
		return fmt.Sprintf("%s's transference from their mental model of %s to their mental model of %s %s",
			name(ev.Source), name(ev.TransferredFrom.Subject), name(ev.Subject), at)
	case KindForgetting:
		return fmt.Sprintf("%s's forgetting of knowledge about %s %s",
			name(ev.Source), name(ev.Subject), at)
	}
	return fmt.Sprintf("unknown evidence %s", at)
}
