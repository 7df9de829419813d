package http

import (
	"context"
	"net/http"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

type PricingCalculator interface {
	CalculatePrice(ctx context.Context, input domain.PricingInput) (domain.PricingResult, error)
}

// Explainer produces advisory text for calculator results.
type Explainer interface {
	ExplainPricing(ctx context.Context, input domain.PricingInput, result domain.PricingResult) string
	ExplainServiceImprovement(ctx context.Context, input domain.ServiceInput, result domain.ServiceResult) string
	ExplainMaintenance(ctx context.Context, input domain.MaintenanceInput, result domain.MaintenanceResult) string
}

type pricingResponse struct {
	domain.PricingResult
	Explanation string `json:"explanation,omitempty"`
}

type PricingHandler struct {
	service   PricingCalculator
	explainer Explainer
	log       *logrus.Logger
}

func NewPricingHandler(service PricingCalculator, explainer Explainer, log *logrus.Logger) *PricingHandler {
	return &PricingHandler{service: service, explainer: explainer, log: log}
}

func (h *PricingHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var input domain.PricingInput
	if status, err := decodeJSON(w, r, &input); err != nil {
		writeError(w, h.log, status, err.Error())
		return
	}

	result, err := h.service.CalculatePrice(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	resp := pricingResponse{PricingResult: result}
	if h.explainer != nil && wantsExplanation(r) {
		resp.Explanation = h.explainer.ExplainPricing(r.Context(), input, result)
	}

	writeJSON(w, h.log, http.StatusOK, resp)
}
