package service

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"ai-strategies/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SimulationService replays the calculators over a seeded, randomly generated
// series of days. Identical requests produce identical points.
type SimulationService struct {
	rules Rules
	log   *logrus.Logger
	now   func() time.Time
	newID func() string
}

func NewSimulationService(rules Rules, log *logrus.Logger) *SimulationService {
	return &SimulationService{
		rules: rules,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *SimulationService) Run(
	ctx context.Context,
	req domain.SimulationRequest,
) (domain.SimulationResult, error) {
	if err := validateInput(req); err != nil {
		return domain.SimulationResult{}, err
	}
	if strings.TrimSpace(req.AssetName) == "" {
		return domain.SimulationResult{}, fmt.Errorf("%w: asset_name is required", ErrInvalidInput)
	}

	rng := rand.New(rand.NewPCG(req.Seed, req.Seed^0x9e3779b97f4a7c15))
	generatedAt := s.now().UTC()
	start := generatedAt.Truncate(24 * time.Hour)

	points := make([]domain.SimulationPoint, 0, req.Days)
	summary := domain.SimulationSummary{MinDynamicPrice: math.Inf(1)}
	var priceSum, riskSum float64
	daysSince := 0

	for day := 0; day < req.Days; day++ {
		if err := ctx.Err(); err != nil {
			return domain.SimulationResult{}, err
		}

		demand := simulateDemand(rng, req.BaseDemand, req.DemandVolatility)
		pricing, err := CalculateDynamicPrice(s.rules, domain.PricingInput{
			Demand:             demand,
			CompetitorPrice:    req.CompetitorPrice,
			Sensitivity:        req.Sensitivity,
			MinProfitMarginPct: req.MinProfitMarginPct,
			AvgCost:            req.AvgCost,
		})
		if err != nil {
			return domain.SimulationResult{}, fmt.Errorf("day %d pricing: %w", day+1, err)
		}

		maintenance, err := AdviseMaintenance(s.rules, domain.MaintenanceInput{
			AssetName:            req.AssetName,
			FailureProbability:   simulateFailureProbability(rng, daysSince),
			DaysSinceMaintenance: daysSince,
			FailureThreshold:     req.FailureThreshold,
			DowntimeCostPerDay:   req.DowntimeCostPerDay,
		})
		if err != nil {
			return domain.SimulationResult{}, fmt.Errorf("day %d maintenance: %w", day+1, err)
		}

		points = append(points, domain.SimulationPoint{
			Day:         day + 1,
			Date:        start.AddDate(0, 0, day).Format(time.DateOnly),
			Demand:      demand,
			Pricing:     pricing,
			Maintenance: maintenance,
		})

		priceSum += pricing.DynamicPrice
		summary.MinDynamicPrice = math.Min(summary.MinDynamicPrice, pricing.DynamicPrice)
		summary.MaxDynamicPrice = math.Max(summary.MaxDynamicPrice, pricing.DynamicPrice)
		if pricing.SurchargeApplied {
			summary.SurchargeDays++
		}

		if maintenance.NeedsMaintenance {
			summary.MaintenanceEvents++
			riskSum += maintenance.DowntimeRiskCost
			daysSince = 0
		} else {
			daysSince++
		}
	}

	summary.AvgDynamicPrice = roundTo2Decimals(priceSum / float64(len(points)))
	summary.TotalDowntimeRisk = roundTo2Decimals(riskSum)

	result := domain.SimulationResult{
		ID:          s.newID(),
		GeneratedAt: generatedAt,
		Points:      points,
		Summary:     summary,
	}

	s.log.WithFields(logrus.Fields{
		"simulation_id":      result.ID,
		"days":               req.Days,
		"maintenance_events": summary.MaintenanceEvents,
	}).Info("simulation completed")

	return result, nil
}

// simulateDemand draws a whole-unit demand around base with normal noise.
func simulateDemand(rng *rand.Rand, base, volatility float64) float64 {
	demand := base * (1 + volatility*rng.NormFloat64())
	return math.Max(0, math.Round(demand))
}

// simulateFailureProbability grows linearly with wear plus noise, clamped to [0,1].
func simulateFailureProbability(rng *rand.Rand, daysSince int) float64 {
	p := simulationBaseFailureProbability +
		simulationDailyWear*float64(daysSince) +
		0.05*rng.NormFloat64()
	return roundTo2Decimals(math.Min(1, math.Max(0, p)))
}
