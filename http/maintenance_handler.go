package http

import (
	"context"
	"net/http"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

type MaintenanceAdvisor interface {
	Advise(ctx context.Context, input domain.MaintenanceInput) (domain.MaintenanceResult, error)
}

type maintenanceResponse struct {
	domain.MaintenanceResult
	Explanation string `json:"explanation,omitempty"`
}

type MaintenanceHandler struct {
	service   MaintenanceAdvisor
	explainer Explainer
	log       *logrus.Logger
}

func NewMaintenanceHandler(service MaintenanceAdvisor, explainer Explainer, log *logrus.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{service: service, explainer: explainer, log: log}
}

func (h *MaintenanceHandler) Advise(w http.ResponseWriter, r *http.Request) {
	var input domain.MaintenanceInput
	if status, err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.log, status, err.Error())
		return
	}

	result, err := h.service.Advise(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	resp := maintenanceResponse{MaintenanceResult: result}
	if h.explainer != nil && wantsExplanation(r) {
		resp.Explanation = h.explainer.ExplainMaintenance(r.Context(), input, result)
	}

	writeJSON(w, h.log, http.StatusOK, resp)
}
