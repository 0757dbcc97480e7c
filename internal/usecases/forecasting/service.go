package forecasting

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type ForecastService interface {
	Forecast(filters domain.FilterConfig, horizon int, mix domain.Dimension) (*domain.ForecastResponse, error)
}

type Service struct {
	selector   analyzing.RecordSelector
	cache      *analyzing.ResultCache
	params     analytics.ForecastParams
	maxHorizon int
}

func NewService(selector analyzing.RecordSelector, cache *analyzing.ResultCache, cfg *config.Config) ForecastService {
	maxHorizon := cfg.Analytics.ForecastMaxHorizon
	if maxHorizon <= 0 {
		maxHorizon = 24
	}

	params := cfg.Analytics.ForecastParams()
	logrus.WithFields(logrus.Fields{
		"horizon":     params.Horizon,
		"window":      params.WindowSize,
		"seasonality": params.Seasonality.Name(),
	}).Info("Configuração da previsão de vendas carregada")

	return &Service{
		selector:   selector,
		cache:      cache,
		params:     params,
		maxHorizon: maxHorizon,
	}
}

// Forecast monta a série mensal dos registros filtrados e projeta horizon meses.
// horizon zero usa o horizonte configurado. Com mix informado, a receita prevista
// também é distribuída pela participação de cada valor da dimensão no último mês.
func (s *Service) Forecast(filters domain.FilterConfig, horizon int, mix domain.Dimension) (*domain.ForecastResponse, error) {
	if horizon == 0 {
		horizon = s.params.Horizon
	}
	if horizon < 0 || horizon > s.maxHorizon {
		return nil, analyzing.NewAnalysisError(
			analyzing.ErrInvalidHorizon, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("horizonte deve estar entre 1 e %d", s.maxHorizon),
		)
	}

	if mix != "" {
		if err := analyzing.ValidateDimension(mix); err != nil {
			return nil, err
		}
	}

	records, version := s.selector.Select(filters)
	params := map[string]any{"horizon": horizon, "mix": mix, "filters": filters.Active()}

	return analyzing.Memoize(s.cache, "forecast", version, params, func() (*domain.ForecastResponse, error) {
		series := analytics.BuildTimeSeries(records, domain.GranularityMonth)

		forecastParams := s.params
		forecastParams.Horizon = horizon

		response := analytics.Forecast(analytics.HistoryFromBuckets(series.Buckets), forecastParams)
		response.Diagnostics.Merge(series.Diagnostics)

		if mix != "" && len(response.History) > 0 {
			basePeriod := response.History[len(response.History)-1].Period
			response.Mix = analytics.ProjectMix(recordsInMonth(records, basePeriod), mix, basePeriod, response.Forecast)
		}

		return &response, nil
	})
}

func recordsInMonth(records []domain.SalesRecord, label string) []domain.SalesRecord {
	var selected []domain.SalesRecord
	for _, record := range records {
		date, err := utils.ParseFlexibleDate(record.SignupDate)
		if err != nil {
			continue
		}
		if analytics.PeriodLabel(date, domain.GranularityMonth) == label {
			selected = append(selected, record)
		}
	}
	return selected
}
