package api

import (
	"fmt"
	"net/http"

	"hermannm.dev/salesdash/config"
	"hermannm.dev/salesdash/datastore"
)

type DashboardAPI struct {
	store  *datastore.Store
	router *http.ServeMux
	config config.API
}

func NewDashboardAPI(
	store *datastore.Store,
	router *http.ServeMux,
	config config.API,
) DashboardAPI {
	api := DashboardAPI{store: store, router: router, config: config}

	api.router.HandleFunc("/upload-csv", api.UploadCSV)
	api.router.HandleFunc("/filter-options", api.GetFilterOptions)
	api.router.HandleFunc("/dashboard", api.GetDashboard)
	api.router.HandleFunc("/filtered-data", api.GetFilteredData)
	api.router.HandleFunc("/export", api.ExportFilteredData)

	return api
}

func (api DashboardAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}

// Looks up the dataset identified by the request's 'dataset' query parameter, sending an error
// response and returning false if the parameter is missing or unknown.
func (api DashboardAPI) datasetFromRequest(
	res http.ResponseWriter,
	req *http.Request,
) (datastore.Dataset, bool) {
	id := req.URL.Query().Get("dataset")
	if id == "" {
		sendClientError(res, nil, "missing 'dataset' query parameter in request")
		return datastore.Dataset{}, false
	}

	dataset, exists := api.store.GetDataset(id)
	if !exists {
		sendError(res, http.StatusNotFound, nil, fmt.Sprintf("no dataset with ID '%s'", id))
		return datastore.Dataset{}, false
	}

	return dataset, true
}
