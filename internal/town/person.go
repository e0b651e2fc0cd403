package town

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
)

// Person is the ground-truth record for one townsperson. The epistemic
// engine never reads these fields directly; it sees them only through the
// domain.Subject feature accessors, and only when evidence justifies it.
type Person struct {
	ID         uuid.UUID
	FirstName  string
	MiddleName string
	LastName   string
	Sex        string
	Status     string
	Age        int
	HairColor  string
	HairLength string
	EyeColor   string
	SkinColor  string
	Glasses    bool

	Home      *Place
	Workplace *Place
	JobTitle  string
	JobShift  string

	Location  *Place
	Attribute domain.Traits
}

func (p *Person) EntityID() uuid.UUID           { return p.ID }
func (p *Person) Name() string                  { return p.FirstName + " " + p.LastName }
func (p *Person) EntityKind() domain.EntityKind { return domain.EntityPerson }
func (p *Person) Traits() domain.Traits         { return p.Attribute }

func (p *Person) LocationID() uuid.UUID {
	if p.Location == nil {
		return uuid.Nil
	}
	return p.Location.ID
}

// ApproximateAge buckets exact age into decades, which is all anyone
// remembers about someone else's age.
func (p *Person) ApproximateAge() string {
	decade := (p.Age / 10) * 10
	return fmt.Sprintf("%ds", decade)
}

func (p *Person) FeatureValue(ft domain.FeatureType) string {
	switch ft {
	case domain.FeatureFirstName:
		return p.FirstName
	case domain.FeatureMiddleName:
		return p.MiddleName
	case domain.FeatureLastName:
		return p.LastName
	case domain.FeatureSex:
		return p.Sex
	case domain.FeatureStatus:
		return p.Status
	case domain.FeatureApproximateAge:
		return p.ApproximateAge()
	case domain.FeatureWorkplace:
		if p.Workplace == nil {
			return ""
		}
		return p.Workplace.PlaceName
	case domain.FeatureJobTitle:
		return p.JobTitle
	case domain.FeatureJobShift:
		return p.JobShift
	case domain.FeatureHome:
		if p.Home == nil {
			return ""
		}
		return p.Home.PlaceName
	case domain.FeatureHomeAddress:
		if p.Home == nil {
			return ""
		}
		return p.Home.Address
	case domain.FeatureHairColor:
		return p.HairColor
	case domain.FeatureHairLength:
		return p.HairLength
	case domain.FeatureEyeColor:
		return p.EyeColor
	case domain.FeatureSkinColor:
		return p.SkinColor
	case domain.FeatureGlasses:
		return strconv.FormatBool(p.Glasses)
	}
	return ""
}
