package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const defaultBestPeriods = 5

func GetOverview(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Debug("INIT - GetOverview")

		response, err := service.Overview(parseFilters(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar visão geral")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

// GetAggregate agrupa os registros filtrados pela dimensão da URL
func GetAggregate(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		dimension := domain.Dimension(pathParam(r, "dimension"))
		logger.Debugf("INIT - GetAggregate %s", dimension)

		top, err := intQuery(r, "top", 0)
		if err != nil || top < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro top inválido", nil)
			return
		}

		response, err := service.Aggregate(dimension, metricQuery(r), top, parseFilters(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao agregar registros")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func GetTimeSeries(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		granularity := domain.Granularity(pathParam(r, "granularity"))
		log.ForContext(r.Context()).Debugf("INIT - GetTimeSeries %s", granularity)

		response, err := service.TimeSeries(granularity, parseFilters(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar série temporal")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func GetBestPeriods(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		granularity := domain.Granularity(pathParam(r, "granularity"))
		log.ForContext(r.Context()).Debugf("INIT - GetBestPeriods %s", granularity)

		top, err := intQuery(r, "top", defaultBestPeriods)
		if err != nil || top < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro top inválido", nil)
			return
		}

		response, err := service.BestPeriods(granularity, metricQuery(r), top, parseFilters(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar melhores períodos")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func GetFilterOptions(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := service.FilterOptions()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar opções de filtro")
			return
		}

		writeJSON(w, r, http.StatusOK, options)
	}
}

// ListRecords retorna uma página dos registros filtrados (?limit=&offset=)
func ListRecords(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := intQuery(r, "limit", 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		offset, err := intQuery(r, "offset", 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		response, err := service.Records(parseFilters(r), limit, offset)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar registros")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}
