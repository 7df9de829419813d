package http

import (
	"context"
	"net/http"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

type ServiceEstimator interface {
	Estimate(ctx context.Context, input domain.ServiceInput) (domain.ServiceResult, error)
}

type serviceImprovementResponse struct {
	domain.ServiceResult
	Explanation string `json:"explanation,omitempty"`
}

type ServiceImprovementHandler struct {
	service   ServiceEstimator
	explainer Explainer
	log       *logrus.Logger
}

func NewServiceImprovementHandler(service ServiceEstimator, explainer Explainer, log *logrus.Logger) *ServiceImprovementHandler {
	return &ServiceImprovementHandler{service: service, explainer: explainer, log: log}
}

func (h *ServiceImprovementHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var input domain.ServiceInput
	if status, err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.log, status, err.Error())
		return
	}

	result, err := h.service.Estimate(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	resp := serviceImprovementResponse{ServiceResult: result}
	if h.explainer != nil && wantsExplanation(r) {
		resp.Explanation = h.explainer.ExplainServiceImprovement(r.Context(), input, result)
	}

	writeJSON(w, h.log, http.StatusOK, resp)
}
