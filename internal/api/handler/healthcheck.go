package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
)

// HealthcheckHandler responde com o horário atual e a versão do snapshot carregado
func HealthcheckHandler(reader store.SnapshotReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"time": time.Now().Format(time.RFC3339),
		}
		if reader != nil {
			status["snapshot_version"] = reader.Version()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
