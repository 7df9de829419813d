package domain

type PricingInput struct {
	Demand             float64  `json:"demand" validate:"finite,gte=0"`
	CompetitorPrice    float64  `json:"competitor_price" validate:"finite,gte=0"`
	Sensitivity        float64  `json:"sensitivity" validate:"finite,gt=0"`
	DemandThreshold    *float64 `json:"demand_threshold,omitempty" validate:"omitempty,finite,gte=0"` // nil uses the configured default
	MinProfitMarginPct float64  `json:"min_profit_margin_pct" validate:"finite,gte=0,lte=50"`
	AvgCost            *float64 `json:"avg_cost,omitempty" validate:"omitempty,finite,gte=0"`
}

type PricingResult struct {
	BasePrice            float64  `json:"base_price"`
	DynamicPrice         float64  `json:"dynamic_price"`
	ProfitPerUnit        *float64 `json:"profit_per_unit,omitempty"`
	NegativeProfit       bool     `json:"negative_profit"`
	CompetitorGap        float64  `json:"competitor_gap"`
	HigherThanCompetitor bool     `json:"higher_than_competitor"`
	SurchargeApplied     bool     `json:"surcharge_applied"`
	FloorApplied         bool     `json:"floor_applied"`
}
