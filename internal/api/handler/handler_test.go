package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type fakeRefresher struct {
	accept     bool
	result     *domain.RefreshResult
	refreshErr error
}

func (f *fakeRefresher) Refresh(context.Context) (*domain.RefreshResult, error) {
	return f.result, f.refreshErr
}

func (f *fakeRefresher) TriggerManualSync() bool {
	return f.accept
}

func (f *fakeRefresher) GetStatus() map[string]any {
	return map[string]any{"refresh_running": !f.accept}
}

func newTestRouter(t *testing.T, refresher SnapshotRefresher) (http.Handler, *store.SnapshotStore) {
	t.Helper()
	log.SetupTestLogger()

	snapshotStore := store.NewSnapshotStore()
	snapshotStore.Replace([]domain.SalesRecord{
		{ID: "1", CustomerName: "Maria", Agent: "A", Country: "BR", Product: "Gold", AmountPaid: 100, SignupDate: "01/02/2024"},
		{ID: "2", CustomerName: "João", Agent: "B", Country: "US", Product: "Silver", AmountPaid: 300, SignupDate: "15/02/2024"},
		{ID: "3", CustomerName: "Ana", Agent: "A", Country: "BR", Product: "Gold", AmountPaid: 50, SignupDate: "not-a-date"},
	})

	cache, err := analyzing.NewResultCache(64, snapshotStore)
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	cfg := &config.Config{Analytics: config.Analytics{
		TopProducts:        5,
		LeaderboardSize:    15,
		ForecastHorizon:    6,
		ForecastMaxHorizon: 24,
	}}

	analysis := analyzing.NewService(snapshotStore, cache, cfg)

	rt := router.New(
		router.WithRoutes(Healthcheck(snapshotStore)...),
		router.WithRoutes(Analytics(analysis)...),
		router.WithRoutes(Records(analysis)...),
		router.WithRoutes(Ranking(ranking.NewLeaderboardService(analysis, cache, cfg))...),
		router.WithRoutes(Forecast(forecasting.NewService(analysis, cache, cfg))...),
		router.WithRoutes(Snapshot(refresher)...),
	)

	return rt, snapshotStore
}

func serve(t *testing.T, h http.Handler, req *http.Request, out any) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func assertAPIError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, rec.Code)

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, code, body.Code)
}

func TestGetOverview(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var overview domain.OverviewResponse
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/overview", nil), &overview)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 450.0, overview.Summary.TotalAmount)
	assert.Equal(t, 3, overview.Summary.TotalDeals)

	var filtered domain.OverviewResponse
	serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/overview?agent=A", nil), &filtered)
	assert.Equal(t, 150.0, filtered.Summary.TotalAmount)
}

func TestGetAggregate(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var response domain.AggregateResponse
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/aggregates/agent?metric=count", nil), &response)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, response.Items, 2)
	assert.Equal(t, "A", response.Items[0].Name)
	assert.Equal(t, 2, response.Items[0].Deals)

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"dimensão desconhecida", "/v1/aggregates/planet", http.StatusBadRequest, apiErrors.ErrInvalidRequest},
		{"métrica desconhecida", "/v1/aggregates/agent?metric=median", http.StatusBadRequest, apiErrors.ErrInvalidRequest},
		{"top inválido", "/v1/aggregates/agent?top=abc", http.StatusBadRequest, apiErrors.ErrInvalidFormat},
		{"top negativo", "/v1/aggregates/agent?top=-1", http.StatusBadRequest, apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, httptest.NewRequest(http.MethodGet, tt.target, nil), nil)
			assertAPIError(t, rec, tt.status, tt.code)
		})
	}
}

func TestGetTimeSeries(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var series domain.TimeSeries
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/timeseries/month", nil), &series)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, series.Buckets, 1)
	assert.Equal(t, "Feb 24", series.Buckets[0].Period)
	assert.Equal(t, 400.0, series.Buckets[0].Amount)
	assert.Equal(t, 1, series.Diagnostics.Count(domain.WarningUnparseableDate))

	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/timeseries/year", nil), nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
}

func TestGetBestPeriods(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var response domain.BestPeriodsResponse
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/timeseries/day/best?top=1", nil), &response)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, response.Periods, 1)
	assert.Equal(t, "15/02/2024", response.Periods[0].Period)
	assert.Equal(t, domain.MetricSum, response.Metric)
}

func TestGetFilterOptions(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var options domain.FilterOptions
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/filters/options", nil), &options)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"A", "B"}, options[domain.FieldAgent])
}

func TestRankingRoutes(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var leaderboard domain.LeaderboardResponse
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/leaderboard/agent", nil), &leaderboard)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, leaderboard.Items, 2)
	assert.Equal(t, "B", leaderboard.Items[0].Name)
	assert.Equal(t, 1, leaderboard.Items[0].Position)
	assert.Equal(t, uint64(1), leaderboard.SnapshotVersion)

	var competition domain.CompetitionResponse
	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/competition/agent?period=Feb%2024", nil), &competition)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Feb 24", competition.Month)
	assert.Equal(t, "Jan 24", competition.PreviousMonth)

	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/competition/agent?period=2024-02", nil), nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidFormat)
}

func TestGetForecast(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var response domain.ForecastResponse
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/forecast?horizon=2", nil), &response)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, response.Forecast, 2)
	assert.Equal(t, "Mar 24", response.Forecast[0].PeriodLabel)
	assert.Equal(t, 1, response.Diagnostics.Count(domain.WarningInsufficientHistory))

	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/forecast?horizon=99", nil), nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)

	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/forecast?horizon=six", nil), nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidFormat)

	var withMix domain.ForecastResponse
	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/forecast?horizon=2&mix=product", nil), &withMix)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, withMix.Mix)
	assert.Equal(t, "Feb 24", withMix.Mix.BasePeriod)
	require.Len(t, withMix.Mix.Items, 2)
	assert.Equal(t, "Silver", withMix.Mix.Items[0].Name)
	assert.Equal(t, 75.0, withMix.Mix.Items[0].Share)
	assert.Equal(t, 25.0, withMix.Mix.Items[1].Share)

	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/forecast?mix=planet", nil), nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
}

func TestListRecords(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var page domain.RecordsResponse
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/records?limit=2&offset=1", nil), &page)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "2", page.Records[0].ID)

	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/records?limit=-1", nil), nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
}

func TestAddRecords_JSON(t *testing.T) {
	h, snapshotStore := newTestRouter(t, nil)

	body := `[{"Customer_Name": "Rui", "sales_agent": "C", "amount_paid": "1,200.50", "signup_date": "20/03/2024"}]`
	req := httptest.NewRequest(http.MethodPost, "/v1/records", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var response domain.AddRecordsResponse
	rec := serve(t, h, req, &response)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, response.Added)
	assert.Equal(t, uint64(2), response.SnapshotVersion)
	assert.Equal(t, 4, snapshotStore.GetAll().Len())

	var overview domain.OverviewResponse
	serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/overview?agent=C", nil), &overview)
	assert.Equal(t, 1200.5, overview.Summary.TotalAmount)
}

func TestAddRecords_WrappedAndInvalid(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/records", strings.NewReader(`{"records": [{"agent": "D", "amount": 10}]}`))
	rec := serve(t, h, req, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/records", strings.NewReader(`{"records": []}`))
	rec = serve(t, h, req, nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrMissingRequiredData)

	req = httptest.NewRequest(http.MethodPost, "/v1/records", strings.NewReader(`{"records": [`))
	rec = serve(t, h, req, nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
}

func TestAddRecords_CSVUpload(t *testing.T) {
	h, snapshotStore := newTestRouter(t, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadField, "vendas.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("sales_agent,amount_paid,signup_date\nE,10,01/03/2024\nF,20,02/03/2024\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/records", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var response domain.AddRecordsResponse
	rec := serve(t, h, req, &response)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 2, response.Added)
	assert.Equal(t, 5, snapshotStore.GetAll().Len())
}

func TestAddRecords_UnsupportedUpload(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(uploadField, "vendas.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/records", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := serve(t, h, req, nil)
	assertAPIError(t, rec, http.StatusBadRequest, apiErrors.ErrInvalidRequest)
}

func TestAddRecords_BodyTooLarge(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	body := `[{"agent": "` + strings.Repeat("x", MaxRecordsBodyBytes) + `"}]`
	req := httptest.NewRequest(http.MethodPost, "/v1/records", strings.NewReader(body))

	rec := serve(t, h, req, nil)
	assertAPIError(t, rec, http.StatusRequestEntityTooLarge, apiErrors.ErrPayloadTooLarge)
}

func TestSnapshotRoutes(t *testing.T) {
	t.Run("recarga aceita", func(t *testing.T) {
		h, _ := newTestRouter(t, &fakeRefresher{accept: true})
		rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/v1/snapshot/refresh", nil), nil)
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("recarga em andamento", func(t *testing.T) {
		h, _ := newTestRouter(t, &fakeRefresher{accept: false})
		rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/v1/snapshot/refresh", nil), nil)
		assertAPIError(t, rec, http.StatusConflict, apiErrors.ErrConflict)
	})

	t.Run("recarga síncrona", func(t *testing.T) {
		h, _ := newTestRouter(t, &fakeRefresher{result: &domain.RefreshResult{Source: "csv", Version: 7, Rows: 3}})

		var result domain.RefreshResult
		rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/v1/snapshot/refresh?wait=true", nil), &result)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(7), result.Version)
	})

	t.Run("recarga síncrona concorrente", func(t *testing.T) {
		h, _ := newTestRouter(t, &fakeRefresher{refreshErr: scheduler.ErrRefreshRunning})
		rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/v1/snapshot/refresh?wait=1", nil), nil)
		assertAPIError(t, rec, http.StatusConflict, apiErrors.ErrConflict)
	})

	t.Run("status", func(t *testing.T) {
		h, _ := newTestRouter(t, &fakeRefresher{accept: true})

		var status map[string]any
		rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/snapshot/status", nil), &status)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, status["refresh_running"])
	})

	t.Run("sem agendador", func(t *testing.T) {
		h, _ := newTestRouter(t, nil)
		rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/v1/snapshot/status", nil), nil)
		assertAPIError(t, rec, http.StatusInternalServerError, apiErrors.ErrInternalServer)
	})
}

func TestHealthcheck(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	var status map[string]any
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/healthcheck", nil), &status)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, status["snapshot_version"])
	assert.NotEmpty(t, status["time"])
}
