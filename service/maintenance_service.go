package service

import (
	"context"
	"fmt"
	"strings"

	"ai-strategies/domain"

	"github.com/sirupsen/logrus"
)

// AdviseMaintenance flags an asset when its failure probability exceeds the
// threshold or its last maintenance is older than rules.MaintenanceOverdueDays.
// Downtime risk is only priced for flagged assets.
func AdviseMaintenance(rules Rules, input domain.MaintenanceInput) (domain.MaintenanceResult, error) {
	if err := validateInput(input); err != nil {
		return domain.MaintenanceResult{}, err
	}
	if strings.TrimSpace(input.AssetName) == "" {
		return domain.MaintenanceResult{}, fmt.Errorf("%w: asset_name is required", ErrInvalidInput)
	}

	var reasons []string
	if input.FailureProbability > input.FailureThreshold {
		reasons = append(reasons, domain.ReasonHighFailureProbability)
	}
	if input.DaysSinceMaintenance > rules.MaintenanceOverdueDays {
		reasons = append(reasons, domain.ReasonOverdueMaintenance)
	}
	needsMaintenance := len(reasons) > 0

	result := domain.MaintenanceResult{
		AssetName:            input.AssetName,
		FailureProbability:   input.FailureProbability,
		DaysSinceMaintenance: input.DaysSinceMaintenance,
		NeedsMaintenance:     needsMaintenance,
		Recommendation:       domain.RecommendationNone,
		Reasons:              reasons,
	}

	if needsMaintenance {
		result.DowntimeRiskCost = roundTo2Decimals(input.DowntimeCostPerDay * input.FailureProbability)
		result.Recommendation = domain.RecommendationSchedule
		result.Warning = domain.MaintenanceWarning
	}

	return result, nil
}

type MaintenanceService struct {
	rules Rules
	cache *ResultCache
	log   *logrus.Logger
}

func NewMaintenanceService(rules Rules, cache *ResultCache, log *logrus.Logger) *MaintenanceService {
	return &MaintenanceService{rules: rules, cache: cache, log: log}
}

func (s *MaintenanceService) Advise(
	ctx context.Context,
	input domain.MaintenanceInput,
) (domain.MaintenanceResult, error) {
	result, err := cached(ctx, s.cache, "maintenance", s.rules, input, func() (domain.MaintenanceResult, error) {
		return AdviseMaintenance(s.rules, input)
	})
	if err != nil {
		return domain.MaintenanceResult{}, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"asset":               input.AssetName,
		"failure_probability": input.FailureProbability,
		"days_since":          input.DaysSinceMaintenance,
		"recommendation":      result.Recommendation,
	})
	if result.NeedsMaintenance {
		entry.WithField("reasons", result.Reasons).Warn("maintenance required")
	} else {
		entry.Info("maintenance evaluated")
	}

	return result, nil
}
