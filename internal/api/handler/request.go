package handler

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseFilters lê os filtros da query string. Cada campo filtrável usa o
// próprio nome como parâmetro (?agent=Ana&product=Gold).
func parseFilters(r *http.Request) domain.FilterConfig {
	query := r.URL.Query()
	filters := make(domain.FilterConfig)

	for _, field := range domain.FilterableFields {
		if value := strings.TrimSpace(query.Get(string(field))); value != "" {
			filters[field] = value
		}
	}

	return filters
}

// intQuery converte um parâmetro inteiro; ausente retorna defaultValue
func intQuery(r *http.Request, name string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return defaultValue, nil
	}

	value, err := cast.ToIntE(raw)
	if err != nil {
		return 0, errors.Errorf("parâmetro %s deve ser um número inteiro", name)
	}

	return value, nil
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

func metricQuery(r *http.Request) domain.Metric {
	return domain.Metric(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("metric"))))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeServiceError traduz o erro do caso de uso para a resposta padronizada.
// Erros sem código próprio viram erro interno com mensagem genérica.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	apiErr := apiErrors.FromError(err, apiErrors.ErrInternalServer)
	logger := log.ForContext(r.Context()).WithError(err)

	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error(message)
		apiErrors.WriteError(w, apiErr.Code, message, nil)
		return
	}

	logger.Warn(message)
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
}
