package town

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Place is the ground-truth record for a residence or business.
type Place struct {
	ID          uuid.UUID
	PlaceName   string
	Kind        domain.EntityKind
	Address     string
	Block       string
	IsApartment bool
}

func (p *Place) EntityID() uuid.UUID           { return p.ID }
func (p *Place) Name() string                  { return p.PlaceName }
func (p *Place) EntityKind() domain.EntityKind { return p.Kind }

func (p *Place) FeatureValue(ft domain.FeatureType) string {
	switch ft {
	case domain.FeatureAddress:
		return p.Address
	case domain.FeatureBlock:
		return p.Block
	case domain.FeatureIsApartment:
		if p.Kind != domain.EntityResidence {
			return ""
		}
		return strconv.FormatBool(p.IsApartment)
	}
	return ""
}
