package sales

import "hermannm.dev/enumnames"

// The grouping variant used for the dashboard's sales distribution chart, chosen from the loaded
// table's schema: age bands when the dataset has a CustomerAge column, calendar months otherwise.
type DistributionKind uint8

const (
	DistributionByAgeGroup DistributionKind = iota + 1
	DistributionByMonth
)

var distributionKindMap = enumnames.NewMap(map[DistributionKind]string{
	DistributionByAgeGroup: "AGE_GROUP",
	DistributionByMonth:    "MONTH",
})

func (kind DistributionKind) IsValid() bool {
	return distributionKindMap.ContainsEnumValue(kind)
}

func (kind DistributionKind) String() string {
	return distributionKindMap.GetNameOrFallback(kind, "INVALID_DISTRIBUTION_KIND")
}

func (kind DistributionKind) MarshalJSON() ([]byte, error) {
	return distributionKindMap.MarshalToNameJSON(kind)
}

func (kind *DistributionKind) UnmarshalJSON(bytes []byte) error {
	return distributionKindMap.UnmarshalFromNameJSON(bytes, kind)
}

type Distribution struct {
	Kind    DistributionKind     `json:"kind"`
	Buckets []DistributionBucket `json:"buckets"`
}

type DistributionBucket struct {
	Label      string  `json:"label"`
	TotalSales float64 `json:"totalSales"`
}

// Customer age bands for the age distribution. Band boundaries are inclusive on both ends; the
// last band has no upper bound.
var ageBands = []struct {
	label  string
	minAge int
	maxAge int // -1 for unbounded
}{
	{label: "18-25", minAge: 0, maxAge: 25},
	{label: "26-35", minAge: 26, maxAge: 35},
	{label: "36-45", minAge: 36, maxAge: 45},
	{label: "46-55", minAge: 46, maxAge: 55},
	{label: "56-65", minAge: 56, maxAge: 65},
	{label: "65+", minAge: 66, maxAge: -1},
}

// monthNames in true month-of-year order, for sorting the month distribution's buckets.
var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Computes the proportional sales distribution for the dashboard's pie chart: total price per
// customer age band when the table has customer ages, otherwise total price per calendar month.
//
// Months from different years are merged into one bucket, and emitted in January...December order
// regardless of which years are present. Buckets without any sales are omitted from the result,
// as are records without a customer age in the age variant.
func SalesDistribution(table Table) Distribution {
	if table.HasCustomerAge {
		return ageDistribution(table)
	}
	return monthDistribution(table)
}

func ageDistribution(table Table) Distribution {
	totals := make([]float64, len(ageBands))
	for _, record := range table.Records {
		if record.CustomerAge == nil {
			continue
		}

		for i, band := range ageBands {
			if *record.CustomerAge >= band.minAge &&
				(band.maxAge == -1 || *record.CustomerAge <= band.maxAge) {
				totals[i] += record.Price
				break
			}
		}
	}

	distribution := Distribution{Kind: DistributionByAgeGroup}
	for i, band := range ageBands {
		if totals[i] != 0 {
			distribution.Buckets = append(
				distribution.Buckets,
				DistributionBucket{Label: band.label, TotalSales: totals[i]},
			)
		}
	}
	return distribution
}

func monthDistribution(table Table) Distribution {
	totalsByMonth := make(map[int]float64)
	for _, record := range table.Records {
		totalsByMonth[record.Month] += record.Price
	}

	distribution := Distribution{Kind: DistributionByMonth}
	for month := 1; month <= len(monthNames); month++ {
		if total, present := totalsByMonth[month]; present {
			distribution.Buckets = append(
				distribution.Buckets,
				DistributionBucket{Label: monthNames[month-1], TotalSales: total},
			)
		}
	}
	return distribution
}
