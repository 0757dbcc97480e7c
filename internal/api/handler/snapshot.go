package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// SnapshotRefresher é a parte do agendador usada pelas rotas de snapshot
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (*domain.RefreshResult, error)
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RefreshSnapshot dispara a recarga do snapshot a partir da origem configurada.
// Com ?wait=true a recarga roda na própria requisição e o resultado é retornado.
func RefreshSnapshot(refresher SnapshotRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - RefreshSnapshot")

		if refresher == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga do snapshot não disponível", nil)
			return
		}

		if cast.ToBool(r.URL.Query().Get("wait")) {
			result, err := refresher.Refresh(r.Context())
			if errors.Is(err, scheduler.ErrRefreshRunning) {
				apiErrors.WriteError(w, apiErrors.ErrConflict, "Recarga do snapshot já em andamento", nil)
				return
			}
			if err != nil {
				logger.WithError(err).Error("Erro ao recarregar snapshot")
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao recarregar snapshot", err.Error())
				return
			}

			writeJSON(w, r, http.StatusOK, result)
			return
		}

		if !refresher.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "Recarga do snapshot já em andamento", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Recarga do snapshot iniciada com sucesso",
		})
	}
}

func GetSnapshotStatus(refresher SnapshotRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if refresher == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga do snapshot não disponível", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, refresher.GetStatus())
	}
}
