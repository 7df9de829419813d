package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"ai-strategies/config"
	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

// ExplanationService writes short advisory texts for calculator results.
// With an API key it asks an OpenAI-compatible chat endpoint; without one, or
// when the call fails, it falls back to a fixed template.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	log        *logrus.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const explanationSystemPrompt = "You are a business analyst explaining automated pricing, customer-service and maintenance metrics to a small business owner. Be concrete, use the numbers you are given, and keep it to 2-3 sentences."

func NewExplanationService(cfg config.AIConfig, log *logrus.Logger) *ExplanationService {
	return &ExplanationService{
		apiKey:  cfg.APIKey,
		apiURL:  cfg.APIURL,
		model:   cfg.Model,
		enabled: cfg.APIKey != "",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

func (s *ExplanationService) ExplainPricing(
	ctx context.Context,
	input domain.PricingInput,
	result domain.PricingResult,
) string {
	fallback := pricingSummary(result)
	if !s.enabled {
		return fallback
	}

	prompt := fmt.Sprintf(`Explain this dynamic price.
- Demand: %.0f
- Price sensitivity: %.2f
- Base price: $%.2f
- Dynamic price: $%.2f (high-demand surcharge applied: %t, profit floor applied: %t)
- Competitor price: $%.2f
%s`,
		input.Demand, input.Sensitivity, result.BasePrice, result.DynamicPrice,
		result.SurchargeApplied, result.FloorApplied, input.CompetitorPrice,
		profitLine(result))

	return s.explain(ctx, "pricing", prompt, fallback)
}

func (s *ExplanationService) ExplainServiceImprovement(
	ctx context.Context,
	input domain.ServiceInput,
	result domain.ServiceResult,
) string {
	fallback := serviceSummary(result)
	if !s.enabled {
		return fallback
	}

	prompt := fmt.Sprintf(`Explain the expected effect of a 24/7 support chatbot.
- Queries per day: %.0f
- Response time: %.1fs -> %.1fs
- Cost per query: $%.2f -> $%.2f
- Satisfaction: %.0f%% -> %.0f%%
- Savings: $%.2f per day, $%.2f per year`,
		input.QueriesPerDay, result.ResponseTime, result.AIResponseTime,
		result.CostPerQuery, result.AICost, result.SatisfactionPct, result.AISatisfaction,
		result.DailySavings, result.AnnualSavings)

	return s.explain(ctx, "service", prompt, fallback)
}

func (s *ExplanationService) ExplainMaintenance(
	ctx context.Context,
	input domain.MaintenanceInput,
	result domain.MaintenanceResult,
) string {
	fallback := maintenanceSummary(result)
	if !s.enabled {
		return fallback
	}

	prompt := fmt.Sprintf(`Explain this predictive maintenance recommendation.
- Asset: %s
- Failure probability: %.2f (threshold %.2f)
- Days since last maintenance: %d
- Recommendation: %s
- Expected downtime cost: $%.2f`,
		input.AssetName, input.FailureProbability, input.FailureThreshold,
		input.DaysSinceMaintenance, result.Recommendation, result.DowntimeRiskCost)

	return s.explain(ctx, "maintenance", prompt, fallback)
}

func (s *ExplanationService) explain(ctx context.Context, topic, prompt, fallback string) string {
	text, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.log.WithError(err).WithField("topic", topic).Warn("explanation request failed, using fallback")
		return fallback
	}
	return text
}

func (s *ExplanationService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: explanationSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}

func profitLine(result domain.PricingResult) string {
	if result.ProfitPerUnit == nil {
		return ""
	}
	return fmt.Sprintf("- Profit per unit: $%.2f", *result.ProfitPerUnit)
}

func pricingSummary(result domain.PricingResult) string {
	direction := "Lower"
	if result.HigherThanCompetitor {
		direction = "Higher"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Base price $%.2f, dynamic price $%.2f. %s than competitor by $%.2f.",
		result.BasePrice, result.DynamicPrice, direction, math.Abs(result.CompetitorGap))
	if result.SurchargeApplied {
		b.WriteString(" Demand is above the threshold, so the high-demand surcharge applies.")
	}
	if result.FloorApplied {
		b.WriteString(" The price was raised to protect the minimum profit margin.")
	}
	if result.ProfitPerUnit != nil {
		fmt.Fprintf(&b, " Profit per unit: $%.2f.", *result.ProfitPerUnit)
		if result.NegativeProfit {
			b.WriteString(" Warning: the price does not cover the average cost.")
		}
	}
	return b.String()
}

func serviceSummary(result domain.ServiceResult) string {
	return fmt.Sprintf(
		"Response time %.1fs -> %.1fs, cost per query $%.2f -> $%.2f, satisfaction %.0f%% -> %.0f%%. Estimated savings: $%.2f per day ($%.2f per year).",
		result.ResponseTime, result.AIResponseTime,
		result.CostPerQuery, result.AICost,
		result.SatisfactionPct, result.AISatisfaction,
		result.DailySavings, result.AnnualSavings)
}

func maintenanceSummary(result domain.MaintenanceResult) string {
	text := fmt.Sprintf("%s: failure probability %.2f, %d days since last maintenance. Recommendation: %s.",
		result.AssetName, result.FailureProbability, result.DaysSinceMaintenance, result.Recommendation)
	if result.NeedsMaintenance {
		text += fmt.Sprintf(" %s Expected downtime cost: $%.2f.", result.Warning, result.DowntimeRiskCost)
	}
	return text
}
