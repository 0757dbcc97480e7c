package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

// MaxRecordsBodyBytes limita o corpo da inclusão manual de registros
const MaxRecordsBodyBytes = 32 << 20

func Healthcheck(reader store.SnapshotReader) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(reader),
		},
	}
}

func Analytics(service analyzing.AnalysisService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/overview",
			Method:  http.MethodGet,
			Handler: GetOverview(service),
		},
		{
			Path:    "/v1/aggregates/:dimension",
			Method:  http.MethodGet,
			Handler: GetAggregate(service),
		},
		{
			Path:    "/v1/timeseries/:granularity",
			Method:  http.MethodGet,
			Handler: GetTimeSeries(service),
		},
		{
			Path:    "/v1/timeseries/:granularity/best",
			Method:  http.MethodGet,
			Handler: GetBestPeriods(service),
		},
		{
			Path:    "/v1/filters/options",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
	}
}

func Records(service analyzing.AnalysisService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/records",
			Method:  http.MethodGet,
			Handler: ListRecords(service),
		},
		{
			Path:        "/v1/records",
			Method:      http.MethodPost,
			Handler:     AddRecords(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.MaxBodyBytes(MaxRecordsBodyBytes)},
		},
	}
}

func Ranking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/leaderboard/:dimension",
			Method:  http.MethodGet,
			Handler: GetLeaderboard(service),
		},
		{
			Path:    "/v1/competition/:dimension",
			Method:  http.MethodGet,
			Handler: GetCompetition(service),
		},
	}
}

func Forecast(service forecasting.ForecastService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/forecast",
			Method:  http.MethodGet,
			Handler: GetForecast(service),
		},
	}
}

func Snapshot(refresher SnapshotRefresher) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshot/refresh",
			Method:  http.MethodPost,
			Handler: RefreshSnapshot(refresher),
		},
		{
			Path:    "/v1/snapshot/status",
			Method:  http.MethodGet,
			Handler: GetSnapshotStatus(refresher),
		},
	}
}
