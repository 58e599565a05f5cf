package sales

import (
	"fmt"
	"sort"
	"strconv"
)

// Aggregated sales for one time period, as one point of the dashboard's trend chart.
type TimePoint struct {
	// "YYYY-MM" for monthly, "YYYY-Qn" for quarterly, "YYYY" for yearly granularity.
	Period       string  `json:"period"`
	TotalSales   float64 `json:"totalSales"`
	AveragePrice float64 `json:"averagePrice"`
	UnitsSold    int     `json:"unitsSold"`
}

// Groups the table's records by the given time granularity, and computes total sales, average
// price and units sold per period.
//
// Periods are emitted in true chronological order, sorted by a numeric period index rather than
// the period label, so e.g. December of one year always comes right before January of the next.
// An empty table yields an empty (non-nil) slice.
func AggregateByTime(table Table, granularity TimeGranularity) ([]TimePoint, error) {
	if !granularity.IsValid() {
		return nil, fmt.Errorf("invalid time granularity '%v'", granularity)
	}

	groups := make(map[int]*priceAccumulator)
	labels := make(map[int]string)

	for _, record := range table.Records {
		index, label := periodOf(record, granularity)

		group, exists := groups[index]
		if !exists {
			group = &priceAccumulator{}
			groups[index] = group
			labels[index] = label
		}
		group.add(record.Price)
	}

	indices := make([]int, 0, len(groups))
	for index := range groups {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	points := make([]TimePoint, 0, len(indices))
	for _, index := range indices {
		group := groups[index]
		points = append(points, TimePoint{
			Period:       labels[index],
			TotalSales:   group.sum,
			AveragePrice: group.mean(),
			UnitsSold:    group.count,
		})
	}
	return points, nil
}

// Returns a numeric index for the record's time period under the given granularity, monotonically
// increasing with time, along with the period's display label.
func periodOf(record Record, granularity TimeGranularity) (index int, label string) {
	switch granularity {
	case GranularityQuarterly:
		return record.Year*4 + (record.Quarter - 1),
			fmt.Sprintf("%d-Q%d", record.Year, record.Quarter)
	case GranularityYearly:
		return record.Year, strconv.Itoa(record.Year)
	default:
		return record.Year*12 + (record.Month - 1), record.YearMonth
	}
}

type priceAccumulator struct {
	sum   float64
	count int
}

func (accumulator *priceAccumulator) add(price float64) {
	accumulator.sum += price
	accumulator.count++
}

func (accumulator *priceAccumulator) mean() float64 {
	if accumulator.count == 0 {
		return 0
	}
	return accumulator.sum / float64(accumulator.count)
}
