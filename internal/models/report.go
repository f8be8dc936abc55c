package models

// PeriodSummary is the income/expense/profit record for one calendar month.
// Money fields are fixed two-decimal strings.
type PeriodSummary struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetProfit    string `json:"net_profit"`
}

// YearSummary is the income/expense/profit record for one calendar year.
type YearSummary struct {
	Year         int    `json:"year"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetProfit    string `json:"net_profit"`
}

// DailyValue is one point of a day-of-month chart.
type DailyValue struct {
	Day   int    `json:"day"`
	Value string `json:"value"`
}

// CategoryShare is one slice of the category expense chart.
type CategoryShare struct {
	Name         string           `json:"name"`
	Total        string           `json:"total"`
	Percentage   string           `json:"percentage"`
	Transactions []CategoryDetail `json:"transactions,omitempty"`
}

// CategoryDetail is a drill-down line of a category share.
type CategoryDetail struct {
	TransactionID string `json:"transaction_id"`
	Category      string `json:"category"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// AvailablePeriod lists the months of a year that contain at least one transaction.
type AvailablePeriod struct {
	Year   int   `json:"year"`
	Months []int `json:"months"`
}

// MonthDashboard bundles the month views a dashboard renders on one screen.
type MonthDashboard struct {
	Summary    PeriodSummary   `json:"summary"`
	Daily      []DailyValue    `json:"daily"`
	Categories []CategoryShare `json:"categories"`
}
