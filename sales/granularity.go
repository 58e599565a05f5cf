package sales

import "hermannm.dev/enumnames"

// The time period that sales records are grouped by in time-series aggregation.
type TimeGranularity uint8

const (
	GranularityMonthly TimeGranularity = iota + 1
	GranularityQuarterly
	GranularityYearly
)

var timeGranularityMap = enumnames.NewMap(map[TimeGranularity]string{
	GranularityMonthly:   "MONTHLY",
	GranularityQuarterly: "QUARTERLY",
	GranularityYearly:    "YEARLY",
})

func (granularity TimeGranularity) IsValid() bool {
	return timeGranularityMap.ContainsEnumValue(granularity)
}

func (granularity TimeGranularity) String() string {
	return timeGranularityMap.GetNameOrFallback(granularity, "INVALID_TIME_GRANULARITY")
}

func (granularity TimeGranularity) MarshalJSON() ([]byte, error) {
	return timeGranularityMap.MarshalToNameJSON(granularity)
}

func (granularity *TimeGranularity) UnmarshalJSON(bytes []byte) error {
	return timeGranularityMap.UnmarshalFromNameJSON(bytes, granularity)
}
