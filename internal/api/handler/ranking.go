package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetLeaderboard ranqueia a dimensão com posições. top ausente usa o tamanho configurado.
func GetLeaderboard(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dimension := domain.Dimension(pathParam(r, "dimension"))
		log.ForContext(r.Context()).Debugf("INIT - GetLeaderboard %s", dimension)

		top, err := intQuery(r, "top", 0)
		if err != nil || top < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro top inválido", nil)
			return
		}

		response, err := service.GetLeaderboard(dimension, metricQuery(r), top, parseFilters(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar ranking")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

// GetCompetition compara as posições do período (?period=Jan 24) com o mês anterior.
// O parâmetro month continua disponível como filtro de mês de referência.
func GetCompetition(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dimension := domain.Dimension(pathParam(r, "dimension"))
		period := strings.TrimSpace(r.URL.Query().Get("period"))
		log.ForContext(r.Context()).Debugf("INIT - GetCompetition %s %s", dimension, period)

		response, err := service.GetCompetition(dimension, period, parseFilters(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar competição")
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}
