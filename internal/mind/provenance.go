package mind

import (
	"sort"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Sources returns the agents who ever supplied evidence about the entity's
// feature (or about the entity in general when ft is nil), most informative
// first. "Most informative" is frequency of appearance among the evidence,
// with insertion order breaking ties — not event number.
func (m *Mind) Sources(entity uuid.UUID, ft *domain.FeatureType) []uuid.UUID {
	mm := m.models[entity]
	if mm == nil {
		return nil
	}

	counts := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, feature := range domain.FeatureTypesFor(mm.subject.EntityKind()) {
		if ft != nil && feature != *ft {
			continue
		}
		f := mm.facets[feature]
		if f == nil {
			continue
		}
		for _, ev := range f.Evidence {
			if ev.Source == uuid.Nil {
				continue
			}
			if counts[ev.Source] == 0 {
				order = append(order, ev.Source)
			}
			counts[ev.Source]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

// TopSource returns the single most informative source for knowledge about
// the entity's feature (or the entity in general), or uuid.Nil if the
// owner holds none.
func (m *Mind) TopSource(entity uuid.UUID, ft *domain.FeatureType) uuid.UUID {
	sources := m.Sources(entity, ft)
	if len(sources) == 0 {
		return uuid.Nil
	}
	return sources[0]
}

// EvidenceAbout returns every evidence record contributing to the owner's
// beliefs about the entity, oldest first by event number.
func (m *Mind) EvidenceAbout(entity uuid.UUID) []*domain.Evidence {
	mm := m.models[entity]
	if mm == nil {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	var all []*domain.Evidence
	for _, f := range mm.facets {
		for _, ev := range f.Evidence {
			if seen[ev.ID] {
				continue
			}
			seen[ev.ID] = true
			all = append(all, ev)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].EventNumber < all[j].EventNumber
	})
	return all
}
