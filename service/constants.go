package service

import "ai-strategies/config"

const (
	DaysPerYear = 365

	MaxSimulationDays = 365
	// starting failure probability of a freshly serviced asset in simulations
	simulationBaseFailureProbability = 0.05
	// probability gained per day without maintenance in simulations
	simulationDailyWear = 0.01
)

// Rules holds the business constants shared by the calculators.
type Rules struct {
	PricingMarkup          float64 // base price = demand × markup
	DefaultDemandThreshold float64
	HighDemandSurcharge    float64

	ResponseTimeFloor    float64 // seconds
	ResponseTimeFactor   float64
	CostFloor            float64
	CostFactor           float64
	SatisfactionIncrease float64 // percentage points
	SatisfactionCap      float64

	MaintenanceOverdueDays int
}

// DefaultRules returns the rules the dashboards were built around.
func DefaultRules() Rules {
	return Rules{
		PricingMarkup:          1.1,
		DefaultDemandThreshold: 100,
		HighDemandSurcharge:    1.2,
		ResponseTimeFloor:      5,
		ResponseTimeFactor:     0.2,
		CostFloor:              0.5,
		CostFactor:             0.2,
		SatisfactionIncrease:   15,
		SatisfactionCap:        90,
		MaintenanceOverdueDays: 60,
	}
}

func RulesFromConfig(cfg config.RulesConfig) Rules {
	return Rules{
		PricingMarkup:          cfg.PricingMarkup,
		DefaultDemandThreshold: cfg.DefaultDemandThreshold,
		HighDemandSurcharge:    cfg.HighDemandSurcharge,
		ResponseTimeFloor:      cfg.ResponseTimeFloor,
		ResponseTimeFactor:     cfg.ResponseTimeFactor,
		CostFloor:              cfg.CostFloor,
		CostFactor:             cfg.CostFactor,
		SatisfactionIncrease:   cfg.SatisfactionIncrease,
		SatisfactionCap:        cfg.SatisfactionCap,
		MaintenanceOverdueDays: cfg.MaintenanceOverdueDays,
	}
}
