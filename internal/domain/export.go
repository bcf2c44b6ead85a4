package domain

// ExportRow is one activity of a saved itinerary, flattened for CSV or JSON
// export. Date is the calendar date of the day, derived from the trip start.
type ExportRow struct {
	Destination string `json:"destination"`
	Date        string `json:"date"`
	DayNumber   int    `json:"day_number"`
	DayTitle    string `json:"day_title"`
	ItineraryActivity
}
