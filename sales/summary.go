package sales

import "errors"

// ErrEmptyTable is returned when summarizing a table with no records, since the average price of
// zero sales is undefined. It is never silently coerced to zero; callers must handle the empty
// case explicitly before displaying KPIs.
var ErrEmptyTable = errors.New("cannot summarize empty sales table")

// The dashboard's three headline KPI values.
type Summary struct {
	TotalSales   float64 `json:"totalSales"`
	AveragePrice float64 `json:"averagePrice"`
	UnitsSold    int     `json:"unitsSold"`
}

func Summarize(table Table) (Summary, error) {
	if table.IsEmpty() {
		return Summary{}, ErrEmptyTable
	}

	var accumulator priceAccumulator
	for _, record := range table.Records {
		accumulator.add(record.Price)
	}

	return Summary{
		TotalSales:   accumulator.sum,
		AveragePrice: accumulator.mean(),
		UnitsSold:    accumulator.count,
	}, nil
}
