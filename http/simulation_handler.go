package http

import (
	"context"
	"net/http"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

type Simulator interface {
	Run(ctx context.Context, req domain.SimulationRequest) (domain.SimulationResult, error)
}

type SimulationHandler struct {
	service Simulator
	log     *logrus.Logger
}

func NewSimulationHandler(service Simulator, log *logrus.Logger) *SimulationHandler {
	return &SimulationHandler{service: service, log: log}
}

func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req domain.SimulationRequest
	if status, err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, status, err.Error())
		return
	}

	result, err := h.service.Run(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
