package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/sales"
)

type UploadResponse struct {
	DatasetID string `json:"datasetId"`
	// True if identical file contents were uploaded before, in which case the previously loaded
	// dataset is reused.
	AlreadyLoaded  bool                `json:"alreadyLoaded"`
	RowCount       int                 `json:"rowCount"`
	EarliestDeal   time.Time           `json:"earliestDeal"`
	LatestDeal     time.Time           `json:"latestDeal"`
	HasCustomerAge bool                `json:"hasCustomerAge"`
	FilterOptions  sales.FilterOptions `json:"filterOptions"`
}

// Expects:
//   - multipart form field 'csvFile': the sales data CSV to load
//
// Returns:
//   - JSON-encoded UploadResponse, with the dataset ID for subsequent dashboard requests and the
//     value sets for the dashboard's filter controls
func (api DashboardAPI) UploadCSV(res http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(res, req.Body, api.config.MaxUploadSizeMB*1024*1024)

	csvFile, _, err := req.FormFile("csvFile")
	if err != nil {
		sendClientError(res, err, "failed to get file upload from request")
		return
	}
	defer csvFile.Close()

	csvData, err := io.ReadAll(csvFile)
	if err != nil {
		sendClientError(res, err, "failed to read uploaded CSV file")
		return
	}

	dataset, alreadyLoaded, err := api.store.LoadDataset(csvData)
	if err != nil {
		var loadError sales.LoadError
		if errors.As(err, &loadError) {
			sendClientError(res, err, sales.SchemaDescription)
		} else {
			sendServerError(res, err, "failed to load uploaded CSV file")
		}
		return
	}

	if alreadyLoaded {
		log.Infof("received previously uploaded dataset '%s' again", dataset.ID)
	} else {
		log.Infof("loaded dataset '%s' (%d rows)", dataset.ID, dataset.Table.RowCount())
	}

	earliest, latest, _ := dataset.Table.DateRange()
	sendJSON(res, UploadResponse{
		DatasetID:      dataset.ID,
		AlreadyLoaded:  alreadyLoaded,
		RowCount:       dataset.Table.RowCount(),
		EarliestDeal:   earliest,
		LatestDeal:     latest,
		HasCustomerAge: dataset.Table.HasCustomerAge,
		FilterOptions:  dataset.Table.FilterOptions(),
	})
}

// Expects:
//   - query parameter 'dataset': ID of a previously uploaded dataset
//
// Returns:
//   - JSON-encoded sales.FilterOptions, for re-rendering the dashboard's filter controls without
//     uploading the dataset again
func (api DashboardAPI) GetFilterOptions(res http.ResponseWriter, req *http.Request) {
	dataset, found := api.datasetFromRequest(res, req)
	if !found {
		return
	}

	sendJSON(res, dataset.Table.FilterOptions())
}
