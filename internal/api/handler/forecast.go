package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func GetForecast(service forecasting.ForecastService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		horizon, err := intQuery(r, "horizon", 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		mix := domain.Dimension(r.URL.Query().Get("mix"))
		logger.Debugf("INIT - GetForecast horizon=%d mix=%s", horizon, mix)

		response, err := service.Forecast(parseFilters(r), horizon, mix)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar previsão")
			return
		}

		for _, warning := range response.Diagnostics.Warnings {
			logger.WithField("code", warning.Code).Debug(warning.Message)
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}
