package domain

// ServiceInput describes the current, pre-automation customer service metrics.
type ServiceInput struct {
	QueriesPerDay   float64 `json:"queries_per_day" validate:"finite,gte=0"`
	ResponseTime    float64 `json:"response_time" validate:"finite,gte=0"` // seconds
	CostPerQuery    float64 `json:"cost_per_query" validate:"finite,gte=0"`
	SatisfactionPct float64 `json:"satisfaction_pct" validate:"finite,gte=0,lte=100"`
}

type ServiceResult struct {
	ResponseTime    float64 `json:"response_time"`
	CostPerQuery    float64 `json:"cost_per_query"`
	SatisfactionPct float64 `json:"satisfaction_pct"`

	AIResponseTime float64 `json:"ai_response_time"`
	AICost         float64 `json:"ai_cost"`
	AISatisfaction float64 `json:"ai_satisfaction"`

	DailySavings  float64 `json:"daily_savings"`
	AnnualSavings float64 `json:"annual_savings"`
}
