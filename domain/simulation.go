package domain

import "time"

// SimulationRequest drives a seeded random walk over demand and asset wear.
type SimulationRequest struct {
	Seed               uint64   `json:"seed"`
	Days               int      `json:"days" validate:"gte=1,lte=365"`
	BaseDemand         float64  `json:"base_demand" validate:"finite,gte=0"`
	DemandVolatility   float64  `json:"demand_volatility" validate:"finite,gte=0,lte=1"` // fraction of BaseDemand
	CompetitorPrice    float64  `json:"competitor_price" validate:"finite,gte=0"`
	Sensitivity        float64  `json:"sensitivity" validate:"finite,gt=0"`
	AvgCost            *float64 `json:"avg_cost,omitempty" validate:"omitempty,finite,gte=0"`
	MinProfitMarginPct float64  `json:"min_profit_margin_pct" validate:"finite,gte=0,lte=50"`

	AssetName          string  `json:"asset_name" validate:"required"`
	FailureThreshold   float64 `json:"failure_threshold" validate:"finite,gte=0,lte=1"`
	DowntimeCostPerDay float64 `json:"downtime_cost_per_day" validate:"finite,gte=0"`
}

type SimulationPoint struct {
	Day         int               `json:"day"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Demand      float64           `json:"demand"`
	Pricing     PricingResult     `json:"pricing"`
	Maintenance MaintenanceResult `json:"maintenance"`
}

type SimulationSummary struct {
	AvgDynamicPrice   float64 `json:"avg_dynamic_price"`
	MinDynamicPrice   float64 `json:"min_dynamic_price"`
	MaxDynamicPrice   float64 `json:"max_dynamic_price"`
	SurchargeDays     int     `json:"surcharge_days"`
	MaintenanceEvents int     `json:"maintenance_events"`
	TotalDowntimeRisk float64 `json:"total_downtime_risk"`
}

type SimulationResult struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Points      []SimulationPoint `json:"points"`
	Summary     SimulationSummary `json:"summary"`
}
