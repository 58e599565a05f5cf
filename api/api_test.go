package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/salesdash/config"
	"hermannm.dev/salesdash/datastore"
	"hermannm.dev/salesdash/sales"
)

const testCSV = `State,Make,Model,BodyStyle,DriveType,Trim,DealDate,Price,CustomerAge
Texas,Ford,F-150,Truck,4WD,XLT,2023-12-15,20000,34
California,Ford,Mustang,Coupe,RWD,GT,2024-01-10,25000,45
California,Honda,Civic,Sedan,FWD,Sport,2024-01-20,15000,28
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	router := http.NewServeMux()
	NewDashboardAPI(datastore.NewStore(), router, config.API{Port: "0", MaxUploadSizeMB: 8})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func uploadTestCSV(t *testing.T, server *httptest.Server, csvData string) UploadResponse {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fileWriter, err := form.CreateFormFile("csvFile", "sales.csv")
	require.NoError(t, err)
	_, err = fileWriter.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	response, err := http.Post(server.URL+"/upload-csv", form.FormDataContentType(), &body)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var uploadResponse UploadResponse
	require.NoError(t, json.NewDecoder(response.Body).Decode(&uploadResponse))
	return uploadResponse
}

func postJSON(t *testing.T, url string, requestBody any) *http.Response {
	t.Helper()

	bodyJSON, err := json.Marshal(requestBody)
	require.NoError(t, err)

	response, err := http.Post(url, "application/json", bytes.NewReader(bodyJSON))
	require.NoError(t, err)
	return response
}

func TestUploadCSV(t *testing.T) {
	server := newTestServer(t)

	uploaded := uploadTestCSV(t, server, testCSV)

	assert.NotEmpty(t, uploaded.DatasetID)
	assert.False(t, uploaded.AlreadyLoaded)
	assert.Equal(t, 3, uploaded.RowCount)
	assert.True(t, uploaded.HasCustomerAge)
	assert.Equal(t, 2023, uploaded.FilterOptions.MinYear)
	assert.Equal(t, 2024, uploaded.FilterOptions.MaxYear)

	var makeValues []string
	for _, field := range uploaded.FilterOptions.Fields {
		if field.Field == sales.CategoryFieldMake {
			makeValues = field.Values
		}
	}
	assert.Equal(t, []string{"Ford", "Honda"}, makeValues)

	// Uploading identical content again must reuse the loaded dataset.
	reUploaded := uploadTestCSV(t, server, testCSV)
	assert.True(t, reUploaded.AlreadyLoaded)
	assert.Equal(t, uploaded.DatasetID, reUploaded.DatasetID)
}

func TestUploadMalformedCSV(t *testing.T) {
	server := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fileWriter, err := form.CreateFormFile("csvFile", "sales.csv")
	require.NoError(t, err)
	_, err = fileWriter.Write([]byte("State,Make\nTexas,Ford\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	response, err := http.Post(server.URL+"/upload-csv", form.FormDataContentType(), &body)
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusBadRequest, response.StatusCode)

	// The error response must describe the expected schema, so the user can fix their upload.
	message, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(message), "DealDate")
	assert.Contains(t, string(message), "header row")
}

func TestGetDashboard(t *testing.T) {
	server := newTestServer(t)
	uploaded := uploadTestCSV(t, server, testCSV)

	query := DashboardQuery{
		Filter:      sales.FilterSelection{MinYear: 2023, MaxYear: 2024},
		Granularity: sales.GranularityMonthly,
		Category:    sales.CategoryFieldMake,
	}

	response := postJSON(
		t, fmt.Sprintf("%s/dashboard?dataset=%s", server.URL, uploaded.DatasetID), query,
	)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var result DashboardResult
	require.NoError(t, json.NewDecoder(response.Body).Decode(&result))

	assert.Equal(t, 3, result.RowCount)
	require.NotNil(t, result.Summary)
	assert.Equal(t, float64(60000), result.Summary.TotalSales)
	assert.Equal(t, float64(20000), result.Summary.AveragePrice)
	assert.Equal(t, 3, result.Summary.UnitsSold)

	require.Len(t, result.TimeSeries, 2)
	assert.Equal(t, "2023-12", result.TimeSeries[0].Period)
	assert.Equal(t, "2024-01", result.TimeSeries[1].Period)

	require.NotEmpty(t, result.Categories.TopByUnits)
	assert.Equal(t, "Ford", result.Categories.TopByUnits[0].Value)

	assert.Equal(t, sales.DistributionByAgeGroup, result.Distribution.Kind)
}

// Filters that match nothing must degrade gracefully: empty sequences, and no KPI summary (since
// the average price of zero sales is undefined).
func TestGetDashboardEmptyResult(t *testing.T) {
	server := newTestServer(t)
	uploaded := uploadTestCSV(t, server, testCSV)

	query := DashboardQuery{
		Filter: sales.FilterSelection{
			Categories: []sales.CategorySelection{
				{Field: sales.CategoryFieldMake, Value: "DeLorean"},
			},
			MinYear: 2023,
			MaxYear: 2024,
		},
		Granularity: sales.GranularityMonthly,
		Category:    sales.CategoryFieldMake,
	}

	response := postJSON(
		t, fmt.Sprintf("%s/dashboard?dataset=%s", server.URL, uploaded.DatasetID), query,
	)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var result DashboardResult
	require.NoError(t, json.NewDecoder(response.Body).Decode(&result))

	assert.Nil(t, result.Summary)
	assert.Equal(t, 0, result.RowCount)
	assert.Empty(t, result.TimeSeries)
	assert.Empty(t, result.Categories.TopBySales)
	assert.Empty(t, result.Distribution.Buckets)
}

func TestGetDashboardUnknownDataset(t *testing.T) {
	server := newTestServer(t)

	response := postJSON(t, server.URL+"/dashboard?dataset=unknown", DashboardQuery{
		Filter:      sales.FilterSelection{MinYear: 2023, MaxYear: 2024},
		Granularity: sales.GranularityMonthly,
		Category:    sales.CategoryFieldMake,
	})
	defer response.Body.Close()

	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestGetFilteredData(t *testing.T) {
	server := newTestServer(t)
	uploaded := uploadTestCSV(t, server, testCSV)

	filter := sales.FilterSelection{
		Categories: []sales.CategorySelection{{Field: sales.CategoryFieldMake, Value: "Honda"}},
		MinYear:    2023,
		MaxYear:    2024,
	}

	response := postJSON(
		t, fmt.Sprintf("%s/filtered-data?dataset=%s", server.URL, uploaded.DatasetID), filter,
	)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var records []sales.Record
	require.NoError(t, json.NewDecoder(response.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "Civic", records[0].Model)
}

func TestExportFilteredData(t *testing.T) {
	server := newTestServer(t)
	uploaded := uploadTestCSV(t, server, testCSV)

	filter := sales.FilterSelection{
		Categories: []sales.CategorySelection{{Field: sales.CategoryFieldMake, Value: "Ford"}},
		MinYear:    2023,
		MaxYear:    2024,
	}

	response := postJSON(
		t, fmt.Sprintf("%s/export?dataset=%s", server.URL, uploaded.DatasetID), filter,
	)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	assert.Equal(t, "text/csv; charset=utf-8", response.Header.Get("Content-Type"))
	expectedFilename := sales.ExportFilename(time.Now())
	assert.Contains(t, response.Header.Get("Content-Disposition"), expectedFilename)

	exported, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(exported)), "\n")
	require.Len(t, lines, 3) // header + 2 Ford rows
	assert.Contains(t, lines[0], "YearMonth")
	assert.Contains(t, lines[1], "F-150")
	assert.Contains(t, lines[2], "Mustang")
}

func TestGetFilterOptions(t *testing.T) {
	server := newTestServer(t)
	uploaded := uploadTestCSV(t, server, testCSV)

	response, err := http.Get(
		fmt.Sprintf("%s/filter-options?dataset=%s", server.URL, uploaded.DatasetID),
	)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var options sales.FilterOptions
	require.NoError(t, json.NewDecoder(response.Body).Decode(&options))
	assert.Equal(t, uploaded.FilterOptions, options)
}
