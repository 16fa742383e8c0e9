package models

// SalesSummary aggregates one business day: paid invoice revenue plus
// completed/served order counts and covers. AvgTicket is zero when there are
// no orders.
type SalesSummary struct {
	Revenue   float64 `json:"revenue"`
	Orders    int     `json:"orders"`
	Covers    int     `json:"covers"`
	AvgTicket float64 `json:"avgTicket"`
}

// TopSeller is one row of the top-sellers report.
type TopSeller struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}
