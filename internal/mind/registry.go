package mind

import (
	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/config"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"go.uber.org/zap"
)

// Registry owns every Mind in the simulation, one per agent. Transmission
// protocols reach a recipient's belief store only through here, keeping
// each Mind self-contained.
type Registry struct {
	tables *config.Tables
	logger *zap.Logger
	minds  map[uuid.UUID]*Mind
	order  []uuid.UUID
}

func NewRegistry(tables *config.Tables, logger *zap.Logger) *Registry {
	return &Registry{
		tables: tables,
		logger: logger,
		minds:  make(map[uuid.UUID]*Mind),
	}
}

// MindOf returns the owner's mind, creating it on first use.
func (r *Registry) MindOf(owner domain.Agent) *Mind {
	if m, ok := r.minds[owner.EntityID()]; ok {
		return m
	}
	m := New(owner, r.tables, r.logger)
	r.minds[owner.EntityID()] = m
	r.order = append(r.order, owner.EntityID())
	return m
}

// Get returns the mind of the given owner ID, or nil.
func (r *Registry) Get(owner uuid.UUID) *Mind {
	return r.minds[owner]
}

// Remove destroys an owner's mind (death or departure). Facets are not
// collected individually; they go with the mind.
func (r *Registry) Remove(owner uuid.UUID) {
	delete(r.minds, owner)
	for i, id := range r.order {
		if id == owner {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// DecayAll runs the batched decay pass over every registered mind. It must
// run only after all evidence-producing transmissions for the timestep
// have settled.
func (r *Registry) DecayAll(ledger *domain.Ledger, now domain.SimTime) (*DecayResult, error) {
	total := &DecayResult{}
	for _, id := range r.order {
		m, ok := r.minds[id]
		if !ok {
			continue
		}
		result, err := m.DecayAll(ledger, now)
		if err != nil {
			return total, err
		}
		total.FacetsDecayed += result.FacetsDecayed
		total.FacetsForgotten += result.FacetsForgotten
	}
	return total, nil
}
