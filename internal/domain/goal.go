package domain

// Goal is the savings-goal snapshot. CurrentSavings is always derived from
// the SAVINGS-group transaction sum, never stored independently.
// ProgressPercent is clamped to [0,100] for display; ProgressRatio keeps the
// unclamped value so an overshoot stays visible to analytics. Exactly one of
// DaysRemaining/DaysPassed is set depending on whether the target date is in
// the future.
type Goal struct {
	TargetAmount    int64   `json:"target_amount"`
	TargetDate      string  `json:"target_date"`
	CurrentSavings  int64   `json:"current_savings"`
	ProgressPercent float64 `json:"progress_percent"`
	ProgressRatio   float64 `json:"progress_ratio"`
	DaysRemaining   *int    `json:"days_remaining,omitempty"`
	DaysPassed      *int    `json:"days_passed,omitempty"`
	DailyNeeded     int64   `json:"daily_needed"`
}
