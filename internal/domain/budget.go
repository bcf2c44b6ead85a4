package domain

// BudgetCategory is one line of a budget estimate, in whole USD.
type BudgetCategory struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// BudgetEstimate is a rough per-trip cost breakdown derived from the budget
// tier, trip length and traveller count. It is not derived from the costs in
// the generated itinerary.
type BudgetEstimate struct {
	BudgetLevel  BudgetLevel      `json:"budget_level"`
	Days         int              `json:"days"`
	NumTravelers int              `json:"num_travelers"`
	DailyRate    int              `json:"daily_rate"`
	Categories   []BudgetCategory `json:"categories"`
	Total        int              `json:"total"`
	PerPerson    int              `json:"per_person"`
	Currency     string           `json:"currency"`
}
