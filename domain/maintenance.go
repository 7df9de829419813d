package domain

const (
	RecommendationSchedule = "Schedule Maintenance"
	RecommendationNone     = "No Action Needed"

	ReasonHighFailureProbability = "high_failure_probability"
	ReasonOverdueMaintenance     = "overdue_maintenance"

	MaintenanceWarning = "Action required based on high failure probability or overdue maintenance."
)

type MaintenanceInput struct {
	AssetName            string  `json:"asset_name" validate:"required"`
	FailureProbability   float64 `json:"failure_probability" validate:"finite,gte=0,lte=1"`
	DaysSinceMaintenance int     `json:"days_since_maintenance" validate:"gte=0"`
	FailureThreshold     float64 `json:"failure_threshold" validate:"finite,gte=0,lte=1"`
	DowntimeCostPerDay   float64 `json:"downtime_cost_per_day,omitempty" validate:"finite,gte=0"`
}

type MaintenanceResult struct {
	AssetName            string   `json:"asset_name"`
	FailureProbability   float64  `json:"failure_probability"`
	DaysSinceMaintenance int      `json:"days_since_maintenance"`
	NeedsMaintenance     bool     `json:"needs_maintenance"`
	DowntimeRiskCost     float64  `json:"downtime_risk_cost"`
	Recommendation       string   `json:"recommendation"`
	Reasons              []string `json:"reasons,omitempty"`
	Warning              string   `json:"warning,omitempty"`
}
