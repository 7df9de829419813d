package service

import (
	"context"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

// CalculateDynamicPrice prices from demand: a markup over demand scaled by
// sensitivity, a surcharge above the demand threshold and, when an average
// cost is known, a floor guaranteeing the minimum profit margin.
// Money fields are rounded to cents once all arithmetic is done.
func CalculateDynamicPrice(rules Rules, input domain.PricingInput) (domain.PricingResult, error) {
	if err := validateInput(input); err != nil {
		return domain.PricingResult{}, err
	}

	threshold := rules.DefaultDemandThreshold
	if input.DemandThreshold != nil {
		threshold = *input.DemandThreshold
	}

	basePrice := input.Demand * rules.PricingMarkup
	dynamicPrice := basePrice * input.Sensitivity

	surcharge := input.Demand > threshold
	if surcharge {
		dynamicPrice *= rules.HighDemandSurcharge
	}

	floorApplied := false
	if input.AvgCost != nil {
		floor := *input.AvgCost * (1 + input.MinProfitMarginPct/100)
		if dynamicPrice < floor {
			dynamicPrice = floor
			floorApplied = true
		}
	}

	// HigherThanCompetitor is derived from the reported, rounded gap
	gap := roundTo2Decimals(dynamicPrice - input.CompetitorPrice)

	result := domain.PricingResult{
		BasePrice:            roundTo2Decimals(basePrice),
		DynamicPrice:         roundTo2Decimals(dynamicPrice),
		CompetitorGap:        gap,
		HigherThanCompetitor: gap > 0,
		SurchargeApplied:     surcharge,
		FloorApplied:         floorApplied,
	}

	if input.AvgCost != nil {
		profit := roundTo2Decimals(dynamicPrice - *input.AvgCost)
		result.ProfitPerUnit = &profit
		result.NegativeProfit = profit < 0
	}

	return result, nil
}

type PricingService struct {
	rules Rules
	cache *ResultCache
	log   *logrus.Logger
}

func NewPricingService(rules Rules, cache *ResultCache, log *logrus.Logger) *PricingService {
	return &PricingService{rules: rules, cache: cache, log: log}
}

func (s *PricingService) CalculatePrice(
	ctx context.Context,
	input domain.PricingInput,
) (domain.PricingResult, error) {
	result, err := cached(ctx, s.cache, "pricing", s.rules, input, func() (domain.PricingResult, error) {
		return CalculateDynamicPrice(s.rules, input)
	})
	if err != nil {
		return domain.PricingResult{}, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"demand":        input.Demand,
		"dynamic_price": result.DynamicPrice,
		"surcharge":     result.SurchargeApplied,
		"floor":         result.FloorApplied,
	})
	if result.NegativeProfit {
		entry.Warn("dynamic price below average cost")
	} else {
		entry.Info("price calculated")
	}

	return result, nil
}
