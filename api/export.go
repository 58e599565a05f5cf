package api

import (
	"fmt"
	"net/http"
	"time"

	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/sales"
)

// Expects:
//   - query parameter 'dataset': ID of a previously uploaded dataset
//   - body: JSON-encoded sales.FilterSelection
//
// Returns:
//   - the filtered table as a UTF-8 CSV download, with the same columns as the loaded dataset
//     (derived calendar fields included)
func (api DashboardAPI) ExportFilteredData(res http.ResponseWriter, req *http.Request) {
	_, filtered, ok := api.filteredTableFromRequest(res, req)
	if !ok {
		return
	}

	filename := sales.ExportFilename(time.Now())
	res.Header().Set("Content-Type", "text/csv; charset=utf-8")
	res.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// Errors past this point can no longer change the response status, as writing the body has
	// begun; they are only logged.
	if err := sales.WriteTable(filtered, res); err != nil {
		log.ErrorCause(err, "failed to write CSV export response")
	}
}
