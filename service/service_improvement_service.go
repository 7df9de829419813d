package service

import (
	"context"
	"math"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

// EstimateServiceImprovement projects chatbot-assisted service metrics from
// the current ones using fixed reduction factors with floors and a capped
// satisfaction gain. Savings are negative when the current cost per query is
// already below the automated cost floor.
func EstimateServiceImprovement(rules Rules, input domain.ServiceInput) (domain.ServiceResult, error) {
	if err := validateInput(input); err != nil {
		return domain.ServiceResult{}, err
	}

	aiResponseTime := math.Max(rules.ResponseTimeFloor, input.ResponseTime*rules.ResponseTimeFactor)
	aiCost := math.Max(rules.CostFloor, input.CostPerQuery*rules.CostFactor)
	aiSatisfaction := math.Min(rules.SatisfactionCap, input.SatisfactionPct+rules.SatisfactionIncrease)

	dailySavings := input.QueriesPerDay * (input.CostPerQuery - aiCost)
	annualSavings := dailySavings * DaysPerYear

	return domain.ServiceResult{
		ResponseTime:    input.ResponseTime,
		CostPerQuery:    input.CostPerQuery,
		SatisfactionPct: input.SatisfactionPct,
		AIResponseTime:  roundTo2Decimals(aiResponseTime),
		AICost:          roundTo2Decimals(aiCost),
		AISatisfaction:  roundTo2Decimals(aiSatisfaction),
		DailySavings:    roundTo2Decimals(dailySavings),
		AnnualSavings:   roundTo2Decimals(annualSavings),
	}, nil
}

type ServiceImprovementService struct {
	rules Rules
	cache *ResultCache
	log   *logrus.Logger
}

func NewServiceImprovementService(rules Rules, cache *ResultCache, log *logrus.Logger) *ServiceImprovementService {
	return &ServiceImprovementService{rules: rules, cache: cache, log: log}
}

func (s *ServiceImprovementService) Estimate(
	ctx context.Context,
	input domain.ServiceInput,
) (domain.ServiceResult, error) {
	result, err := cached(ctx, s.cache, "service", s.rules, input, func() (domain.ServiceResult, error) {
		return EstimateServiceImprovement(s.rules, input)
	})
	if err != nil {
		return domain.ServiceResult{}, err
	}

	s.log.WithFields(logrus.Fields{
		"queries_per_day": input.QueriesPerDay,
		"ai_cost":         result.AICost,
		"daily_savings":   result.DailySavings,
	}).Info("service improvement estimated")

	return result, nil
}
