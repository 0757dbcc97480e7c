package config

import "github.com/vfg2006/sales-dashboard-api/internal/analytics"

// ForecastParams converte a configuração nos parâmetros do Forecaster
func (a Analytics) ForecastParams() analytics.ForecastParams {
	params := analytics.DefaultForecastParams()

	if a.ForecastHorizon > 0 {
		params.Horizon = a.ForecastHorizon
	}
	if a.ForecastWindow > 0 {
		params.WindowSize = a.ForecastWindow
	}
	if a.BaseConfidence > 0 {
		params.BaseConfidence = a.BaseConfidence
	}
	if a.ConfidenceDecay > 0 {
		params.DecayRate = a.ConfidenceDecay
	}
	if a.MinHistory > 0 {
		params.MinHistory = a.MinHistory
	}
	params.Seasonality = analytics.SeasonalModelByName(a.SeasonalModel)

	return params
}
