// Package scheduler contém os serviços de agendamento para atualização de dados
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/ingesting"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
)

// ErrRefreshRunning indica que já existe uma recarga em andamento
var ErrRefreshRunning = errors.New("snapshot refresh already running")

type SnapshotRefreshConfig struct {
	CronSchedule string
	Enabled      bool
	LoadOnStart  bool
	Timeout      time.Duration
}

// SnapshotRefreshService recarrega as linhas da origem, normaliza e troca o snapshot
type SnapshotRefreshService struct {
	scheduler              *gocron.Scheduler
	source                 ingesting.RowSource
	store                  store.Store
	config                 SnapshotRefreshConfig
	refreshRunning         bool
	refreshMutex           sync.Mutex
	lastRefreshStartedAt   time.Time
	lastRefreshCompletedAt time.Time
	lastResult             *domain.RefreshResult
	lastError              error
}

func NewSnapshotRefreshService(
	source ingesting.RowSource,
	snapshotStore store.Store,
	cfg *config.Config,
) *SnapshotRefreshService {
	refreshConfig := SnapshotRefreshConfig{
		CronSchedule: cfg.SnapshotRefresh.CronSchedule,
		Enabled:      cfg.SnapshotRefresh.Enabled,
		LoadOnStart:  cfg.SnapshotRefresh.LoadOnStart,
		Timeout:      time.Duration(cfg.Source.TimeoutMS) * time.Millisecond,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
		"load_on_start": refreshConfig.LoadOnStart,
		"source":        source.Name(),
	}).Info("Configuração do agendador de recarga do snapshot carregada")

	return &SnapshotRefreshService{
		scheduler: scheduler,
		source:    source,
		store:     snapshotStore,
		config:    refreshConfig,
	}
}

// Start faz a carga inicial (quando configurada) e agenda as recargas
func (s *SnapshotRefreshService) Start(ctx context.Context) error {
	if s.config.LoadOnStart {
		if _, err := s.Refresh(ctx); err != nil {
			logrus.WithError(err).Error("Erro na carga inicial do snapshot")
		}
	}

	if !s.config.Enabled {
		logrus.Info("Recarga agendada do snapshot desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recarga do snapshot")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrRefreshRunning) {
			logrus.WithError(err).Error("Erro na recarga agendada do snapshot")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga do snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

// Refresh carrega as linhas da origem e substitui o snapshot. Uma falha na
// origem mantém o snapshot anterior intacto.
func (s *SnapshotRefreshService) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Recarga do snapshot já em andamento, ignorando")
		return nil, ErrRefreshRunning
	}
	s.refreshRunning = true
	startTime := time.Now()
	s.lastRefreshStartedAt = startTime
	s.refreshMutex.Unlock()

	result, err := s.refresh(ctx, startTime)

	s.refreshMutex.Lock()
	s.refreshRunning = false
	s.lastError = err
	if err == nil {
		s.lastResult = result
		s.lastRefreshCompletedAt = time.Now()
	}
	s.refreshMutex.Unlock()

	return result, err
}

func (s *SnapshotRefreshService) refresh(ctx context.Context, startTime time.Time) (*domain.RefreshResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logrus.WithField("source", s.source.Name()).Info("Iniciando recarga do snapshot")

	rawRows, err := s.source.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar linhas de %s: %w", s.source.Name(), err)
	}

	rows := make([]analytics.Row, 0, len(rawRows))
	for _, raw := range rawRows {
		rows = append(rows, analytics.Row(raw))
	}

	records, diagnostics := analytics.NormalizeRows(rows)
	snapshot := s.store.Replace(records)

	result := &domain.RefreshResult{
		Source:      s.source.Name(),
		Version:     snapshot.Version,
		Rows:        len(records),
		Duration:    time.Since(startTime),
		Diagnostics: diagnostics,
	}

	entry := logrus.WithFields(logrus.Fields{
		"version":  result.Version,
		"rows":     result.Rows,
		"duration": result.Duration.String(),
	})
	for _, warning := range diagnostics.Warnings {
		entry.WithFields(logrus.Fields{"code": warning.Code, "count": warning.Count}).Warn(warning.Message)
	}
	entry.Info("Snapshot recarregado com sucesso")

	return result, nil
}

// TriggerManualSync inicia manualmente uma recarga em segundo plano
func (s *SnapshotRefreshService) TriggerManualSync() bool {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Recarga do snapshot já em andamento, ignorando solicitação manual")
		return false
	}
	s.refreshMutex.Unlock()

	logrus.Info("Iniciando recarga manual do snapshot")
	go func() {
		if _, err := s.Refresh(context.Background()); err != nil && !errors.Is(err, ErrRefreshRunning) {
			logrus.WithError(err).Error("Erro na recarga manual do snapshot")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotRefreshService) GetStatus() map[string]any {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	status := map[string]any{
		"refresh_enabled":           s.config.Enabled,
		"refresh_cron":              s.config.CronSchedule,
		"refresh_running":           s.refreshRunning,
		"source":                    s.source.Name(),
		"snapshot_version":          s.store.Version(),
		"last_refresh_started_at":   s.lastRefreshStartedAt,
		"last_refresh_completed_at": s.lastRefreshCompletedAt,
	}
	if s.lastResult != nil {
		status["last_result"] = s.lastResult
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	return status
}
