package domain

import "time"

// Setting keys. All values are stored as strings and parsed once by the
// settings service; nothing else in the codebase touches the raw strings.
const (
	SettingTargetAmount = "target_amount"
	SettingTargetDate   = "target_date"
	SettingSalaryDay    = "salary_day"
	SettingTotalBudget  = "total_budget"
)

// SettingKeys is the closed set of keys the API accepts.
var SettingKeys = []string{
	SettingTargetAmount,
	SettingTargetDate,
	SettingSalaryDay,
	SettingTotalBudget,
}

// Settings is the raw string form exposed at the API boundary.
type Settings struct {
	TargetAmount string `json:"target_amount"`
	TargetDate   string `json:"target_date"`
	SalaryDay    string `json:"salary_day"`
	TotalBudget  string `json:"total_budget"`
}

// TypedSettings carries the parsed values consumers work with. Zero values
// mean "unset". SalaryDay is informational only; budget periods are
// calendar months.
type TypedSettings struct {
	TargetAmount int64
	TargetDate   time.Time
	SalaryDay    int
	TotalBudget  int64
}

type SettingsRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	GetAll() (map[string]string, error)
}
