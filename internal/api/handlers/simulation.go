package handlers

import (
	"net/http"

	"github.com/grapevine-sim/grapevine/internal/sim"
	"go.uber.org/zap"
)

type SimulationHandler struct {
	sim    *sim.Simulation
	logger *zap.Logger
}

func NewSimulationHandler(s *sim.Simulation, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{sim: s, logger: logger}
}

type stepResponse struct {
	OrdinalDate int    `json:"ordinal_date"`
	Part        string `json:"part"`
	Steps       int    `json:"steps"`
}

// Step advances the simulation one timestep on demand, in addition to the
// background ticker.
func (h *SimulationHandler) Step(w http.ResponseWriter, r *http.Request) {
	now, err := h.sim.Step()
	if err != nil {
		h.logger.Error("manual step failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "step failed")
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{
		OrdinalDate: now.OrdinalDate,
		Part:        string(now.Part),
		Steps:       h.sim.Steps(),
	})
}

type statusResponse struct {
	OrdinalDate int    `json:"ordinal_date"`
	Part        string `json:"part"`
	Steps       int    `json:"steps"`
	People      int    `json:"people"`
}

func (h *SimulationHandler) Status(w http.ResponseWriter, r *http.Request) {
	now := h.sim.Now()
	writeJSON(w, http.StatusOK, statusResponse{
		OrdinalDate: now.OrdinalDate,
		Part:        string(now.Part),
		Steps:       h.sim.Steps(),
		People:      len(h.sim.People()),
	})
}
