package domain

type WeeklyStats struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	TotalHabits int         `json:"total_habits"`
	OverallRate float64     `json:"overall_completion_rate"`
	HabitStats  []HabitStat `json:"habits"`
}

type HabitStat struct {
	HabitID        string  `json:"habit_id"`
	HabitTitle     string  `json:"habit_title"`
	Icon           string  `json:"icon"`
	CompletionRate float64 `json:"completion_rate"`
	DaysCompleted  int     `json:"days_completed"`
	DaysTracked    int     `json:"days_tracked"`
	DailyProgress  []bool  `json:"daily_progress"`
}

// EcoImpact holds the lifetime impact totals reported by the tracking collaborator.
type EcoImpact struct {
	WaterSavedLiters    int `json:"water_saved_liters" yaml:"water_saved_liters"`
	EnergySavedKWh      int `json:"energy_saved_kwh" yaml:"energy_saved_kwh"`
	CO2ReducedKg        int `json:"co2_reduced_kg" yaml:"co2_reduced_kg"`
	PlasticAvoidedItems int `json:"plastic_avoided_items" yaml:"plastic_avoided_items"`
}

// Add returns the totals grown by a delta. Negative amounts are rejected.
func (e EcoImpact) Add(delta EcoImpact) (EcoImpact, error) {
	if delta.WaterSavedLiters < 0 || delta.EnergySavedKWh < 0 || delta.CO2ReducedKg < 0 || delta.PlasticAvoidedItems < 0 {
		return e, ErrInvalidAmount
	}
	if delta == (EcoImpact{}) {
		return e, ErrInvalidAmount
	}

	e.WaterSavedLiters += delta.WaterSavedLiters
	e.EnergySavedKWh += delta.EnergySavedKWh
	e.CO2ReducedKg += delta.CO2ReducedKg
	e.PlasticAvoidedItems += delta.PlasticAvoidedItems
	return e, nil
}

func (e EcoImpact) Metrics() map[Metric]int {
	return map[Metric]int{
		MetricWaterSaved:     e.WaterSavedLiters,
		MetricEnergySaved:    e.EnergySavedKWh,
		MetricCO2Reduced:     e.CO2ReducedKg,
		MetricPlasticAvoided: e.PlasticAvoidedItems,
	}
}
