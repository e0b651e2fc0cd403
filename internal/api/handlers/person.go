package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/grapevine-sim/grapevine/internal/domain"
	"github.com/grapevine-sim/grapevine/internal/mind"
	"github.com/grapevine-sim/grapevine/internal/sim"
	"github.com/grapevine-sim/grapevine/internal/town"
)

type PersonHandler struct {
	sim *sim.Simulation
}

func NewPersonHandler(s *sim.Simulation) *PersonHandler {
	return &PersonHandler{sim: s}
}

type personSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Workplace string `json:"workplace,omitempty"`
	Location  string `json:"location,omitempty"`
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	var out []personSummary
	h.sim.ReadPeople(func(people []*town.Person) {
		out = make([]personSummary, 0, len(people))
		for _, p := range people {
			s := personSummary{ID: p.ID.String(), Name: p.Name(), Age: p.Age}
			if p.Workplace != nil {
				s.Workplace = p.Workplace.Name()
			}
			if p.Location != nil {
				s.Location = p.Location.Name()
			}
			out = append(out, s)
		}
	})
	writeJSON(w, http.StatusOK, out)
}

type mindSummary struct {
	Owner         string             `json:"owner"`
	KnownSubjects []mindSubjectEntry `json:"known_subjects"`
}

type mindSubjectEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Facets   int     `json:"facets"`
	Salience float64 `json:"salience"`
}

// GetMind summarizes everything the person holds beliefs about. The walk
// runs inside ReadMind so a concurrent timestep cannot mutate the belief
// maps under it.
func (h *PersonHandler) GetMind(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var out mindSummary
	found := h.sim.ReadMind(id, func(m *mind.Mind, _ domain.NameResolver) {
		out.Owner = m.Owner().Name()
		for _, subject := range m.KnownSubjects() {
			model := m.Model(subject.EntityID())
			out.KnownSubjects = append(out.KnownSubjects, mindSubjectEntry{
				ID:       subject.EntityID().String(),
				Name:     subject.Name(),
				Kind:     string(subject.EntityKind()),
				Facets:   len(model.KnownFeatures()),
				Salience: m.Salience(subject.EntityID()),
			})
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "person not found or holds no beliefs")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type beliefEntry struct {
	Feature  string  `json:"feature"`
	Value    string  `json:"value"`
	Strength float64 `json:"strength"`
	Accurate bool    `json:"accurate"`
	Evidence int     `json:"evidence"`
}

// GetBeliefs returns the person's belief facets about one subject,
// optionally narrowed to a single feature via ?feature=.
func (h *PersonHandler) GetBeliefs(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := parseID(w, r, "subject")
	if !ok {
		return
	}
	q := r.URL.Query().Get("feature")

	var out []beliefEntry
	status, msg := http.StatusOK, ""
	found := h.sim.ReadMind(id, func(m *mind.Mind, _ domain.NameResolver) {
		model := m.Model(subjectID)
		if model == nil {
			status, msg = http.StatusNotFound, "no mental model of that subject"
			return
		}
		features := domain.FeatureTypesFor(model.Subject().EntityKind())
		if q != "" {
			ft := domain.FeatureType(q)
			if !domain.ValidFeatureType(model.Subject().EntityKind(), ft) {
				status, msg = http.StatusBadRequest, "unknown feature for subject kind"
				return
			}
			features = []domain.FeatureType{ft}
		}
		out = make([]beliefEntry, 0, len(features))
		for _, ft := range features {
			f := model.Facet(ft)
			if f == nil {
				continue
			}
			out = append(out, beliefEntry{
				Feature:  string(ft),
				Value:    f.Value,
				Strength: f.Strength,
				Accurate: f.Accurate(),
				Evidence: len(f.Evidence),
			})
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "person not found or holds no beliefs")
		return
	}
	if status != http.StatusOK {
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type sourceEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetSources ranks where the person's knowledge of the subject came from.
func (h *PersonHandler) GetSources(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := parseID(w, r, "subject")
	if !ok {
		return
	}
	var ft *domain.FeatureType
	if q := r.URL.Query().Get("feature"); q != "" {
		t := domain.FeatureType(q)
		ft = &t
	}

	out := make([]sourceEntry, 0)
	found := h.sim.ReadMind(id, func(m *mind.Mind, name domain.NameResolver) {
		for _, src := range m.Sources(subjectID, ft) {
			out = append(out, sourceEntry{ID: src.String(), Name: name(src)})
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "person not found or holds no beliefs")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type evidenceEntry struct {
	Kind        string `json:"kind"`
	EventNumber uint64 `json:"event_number"`
	Description string `json:"description"`
}

// GetEvidence narrates the full provenance trail for one subject.
func (h *PersonHandler) GetEvidence(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := parseID(w, r, "subject")
	if !ok {
		return
	}

	out := make([]evidenceEntry, 0)
	found := h.sim.ReadMind(id, func(m *mind.Mind, name domain.NameResolver) {
		for _, ev := range m.EvidenceAbout(subjectID) {
			out = append(out, evidenceEntry{
				Kind:        string(ev.Kind),
				EventNumber: ev.EventNumber,
				Description: domain.Describe(ev, name),
			})
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "person not found or holds no beliefs")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}
