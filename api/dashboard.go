package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hermannm.dev/salesdash/sales"
	"hermannm.dev/wrap"
)

// A dashboard recomputation request: every filter or selector change on the frontend sends one of
// these, and the full pipeline runs again over the stored dataset.
type DashboardQuery struct {
	Filter      sales.FilterSelection `json:"filter"`
	Granularity sales.TimeGranularity `json:"granularity"`
	// The categorical field analyzed by the dashboard's category analysis section.
	Category sales.CategoryField `json:"category"`
}

func (query DashboardQuery) Validate() error {
	var errs []error

	if err := query.Filter.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !query.Granularity.IsValid() {
		errs = append(errs, errors.New("invalid time granularity"))
	}
	if !query.Category.IsValid() {
		errs = append(errs, errors.New("invalid category field for analysis"))
	}

	if len(errs) != 0 {
		return wrap.Errors("invalid dashboard query", errs...)
	}
	return nil
}

type DashboardResult struct {
	// Omitted when the filters matched no rows, since average price is undefined then. The other
	// result sequences degrade to empty.
	Summary      *sales.Summary         `json:"summary,omitempty"`
	TimeSeries   []sales.TimePoint      `json:"timeSeries"`
	Categories   sales.CategoryAnalysis `json:"categories"`
	Distribution sales.Distribution     `json:"distribution"`
	RowCount     int                    `json:"rowCount"`
}

// Expects:
//   - query parameter 'dataset': ID of a previously uploaded dataset
//   - body: JSON-encoded DashboardQuery
//
// Returns:
//   - JSON-encoded DashboardResult with every aggregate the dashboard renders
func (api DashboardAPI) GetDashboard(res http.ResponseWriter, req *http.Request) {
	dataset, found := api.datasetFromRequest(res, req)
	if !found {
		return
	}

	var query DashboardQuery
	if err := json.NewDecoder(req.Body).Decode(&query); err != nil {
		sendClientError(res, err, "failed to parse dashboard query from request body")
		return
	}
	if err := query.Validate(); err != nil {
		sendClientError(res, err, "")
		return
	}

	filtered := query.Filter.Apply(dataset.Table)

	result := DashboardResult{RowCount: filtered.RowCount()}

	summary, err := sales.Summarize(filtered)
	switch {
	case err == nil:
		result.Summary = &summary
	case !errors.Is(err, sales.ErrEmptyTable):
		sendServerError(res, err, "failed to summarize filtered sales data")
		return
	}

	result.TimeSeries, err = sales.AggregateByTime(filtered, query.Granularity)
	if err != nil {
		sendServerError(res, err, "failed to aggregate sales by time period")
		return
	}

	result.Categories, err = sales.AggregateByCategory(filtered, query.Category)
	if err != nil {
		sendServerError(res, err, "failed to aggregate sales by category")
		return
	}

	result.Distribution = sales.SalesDistribution(filtered)

	sendJSON(res, result)
}

// Expects:
//   - query parameter 'dataset': ID of a previously uploaded dataset
//   - body: JSON-encoded sales.FilterSelection
//
// Returns:
//   - JSON-encoded array of the filtered records, for the dashboard's raw data table
func (api DashboardAPI) GetFilteredData(res http.ResponseWriter, req *http.Request) {
	_, filtered, ok := api.filteredTableFromRequest(res, req)
	if !ok {
		return
	}

	sendJSON(res, filtered.Records)
}

func (api DashboardAPI) filteredTableFromRequest(
	res http.ResponseWriter,
	req *http.Request,
) (dataset sales.Table, filtered sales.Table, ok bool) {
	storedDataset, found := api.datasetFromRequest(res, req)
	if !found {
		return sales.Table{}, sales.Table{}, false
	}

	var filter sales.FilterSelection
	if err := json.NewDecoder(req.Body).Decode(&filter); err != nil {
		sendClientError(res, err, "failed to parse filter selection from request body")
		return sales.Table{}, sales.Table{}, false
	}
	if err := filter.Validate(); err != nil {
		sendClientError(res, err, "")
		return sales.Table{}, sales.Table{}, false
	}

	return storedDataset.Table, filter.Apply(storedDataset.Table), true
}
