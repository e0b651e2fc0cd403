package town

import (
	"math/rand"

	"github.com/grapevine-sim/grapevine/internal/domain"
)

// RoutineStep moves everyone according to their daily routine: workers go
// to their workplace on their shift, and everyone else either stays home
// or errands at a random business.
func (t *Town) RoutineStep(rng *rand.Rand, part domain.DayPart) {
	var businesses []*Place
	for _, p := range t.Places {
		if p.Kind == domain.EntityBusiness {
			businesses = append(businesses, p)
		}
	}
	for _, p := range t.People {
		switch {
		case p.Workplace != nil && p.JobShift == string(part):
			t.MoveTo(p, p.Workplace)
		case part == domain.Day && len(businesses) > 0 && rng.Float64() < 0.4:
			t.MoveTo(p, businesses[rng.Intn(len(businesses))])
		default:
			t.MoveTo(p, p.Home)
		}
	}
}
