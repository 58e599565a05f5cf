package sales

import (
	"fmt"
	"sort"
)

const topCategoryLimit = 10

// Aggregated sales for one value of a categorical field.
type CategoryTotal struct {
	Value        string  `json:"value"`
	TotalSales   float64 `json:"totalSales"`
	UnitsSold    int     `json:"unitsSold"`
	AveragePrice float64 `json:"averagePrice"`
}

// The three top-10 rankings of the dashboard's category analysis section, each computed
// independently over the same grouped data.
type CategoryAnalysis struct {
	Field        CategoryField   `json:"field"`
	TopBySales   []CategoryTotal `json:"topBySales"`
	TopByUnits   []CategoryTotal `json:"topByUnits"`
	TopByAverage []CategoryTotal `json:"topByAverage"`
}

// Groups the table's records by the given categorical field, and ranks the groups by total sales,
// unit count and average price.
//
// Each ranking is sorted descending on its metric, with ties broken by category value in
// ascending order so that the top-10 truncation is deterministic. Truncation happens after
// sorting. An empty table yields empty rankings.
func AggregateByCategory(table Table, field CategoryField) (CategoryAnalysis, error) {
	if !field.IsValid() {
		return CategoryAnalysis{}, fmt.Errorf("invalid category field '%v'", field)
	}

	groups := make(map[string]*priceAccumulator)
	for _, record := range table.Records {
		value := record.CategoryValue(field)

		group, exists := groups[value]
		if !exists {
			group = &priceAccumulator{}
			groups[value] = group
		}
		group.add(record.Price)
	}

	totals := make([]CategoryTotal, 0, len(groups))
	for value, group := range groups {
		totals = append(totals, CategoryTotal{
			Value:        value,
			TotalSales:   group.sum,
			UnitsSold:    group.count,
			AveragePrice: group.mean(),
		})
	}

	return CategoryAnalysis{
		Field: field,
		TopBySales: topCategories(totals, func(total CategoryTotal) float64 {
			return total.TotalSales
		}),
		TopByUnits: topCategories(totals, func(total CategoryTotal) float64 {
			return float64(total.UnitsSold)
		}),
		TopByAverage: topCategories(totals, func(total CategoryTotal) float64 {
			return total.AveragePrice
		}),
	}, nil
}

func topCategories(
	totals []CategoryTotal,
	metric func(CategoryTotal) float64,
) []CategoryTotal {
	ranked := make([]CategoryTotal, len(totals))
	copy(ranked, totals)

	sort.Slice(ranked, func(i, j int) bool {
		metricI, metricJ := metric(ranked[i]), metric(ranked[j])
		if metricI != metricJ {
			return metricI > metricJ
		}
		return ranked[i].Value < ranked[j].Value
	})

	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	return ranked
}
