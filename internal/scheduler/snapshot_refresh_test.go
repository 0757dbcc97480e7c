package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/ingesting/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
	"go.uber.org/mock/gomock"
)

func newRefreshService(ctrl *gomock.Controller, cfg config.SnapshotRefresh) (*SnapshotRefreshService, *mocks.MockRowSource, *store.SnapshotStore) {
	mockSource := mocks.NewMockRowSource(ctrl)
	mockSource.EXPECT().Name().Return("csv:sales.csv").AnyTimes()

	snapshotStore := store.NewSnapshotStore()
	service := NewSnapshotRefreshService(mockSource, snapshotStore, &config.Config{
		SnapshotRefresh: cfg,
		Source:          config.Source{TimeoutMS: 1000},
	})

	return service, mockSource, snapshotStore
}

func TestSnapshotRefreshService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		setup    func(source *mocks.MockRowSource, snapshotStore *store.SnapshotStore)
		validate func(t *testing.T, result *domain.RefreshResult, err error, snapshotStore *store.SnapshotStore)
	}{
		{
			name: "Linhas carregadas substituem o snapshot",
			setup: func(source *mocks.MockRowSource, snapshotStore *store.SnapshotStore) {
				snapshotStore.Replace([]domain.SalesRecord{{ID: "antigo"}})

				source.EXPECT().LoadRows(gomock.Any()).Return([]map[string]any{
					{"sales_agent": "A", "amount_paid": "100"},
					{"sales_agent": "B", "amount_paid": "abc"},
				}, nil)
			},
			validate: func(t *testing.T, result *domain.RefreshResult, err error, snapshotStore *store.SnapshotStore) {
				require.NoError(t, err)
				assert.Equal(t, uint64(2), result.Version)
				assert.Equal(t, 2, result.Rows)
				assert.Equal(t, "csv:sales.csv", result.Source)
				assert.Equal(t, 1, result.Diagnostics.Count(domain.WarningDefaultedField))

				snapshot := snapshotStore.GetAll()
				require.Equal(t, 2, snapshot.Len())
				assert.Equal(t, "A", snapshot.Records[0].Agent)
				assert.Equal(t, 100.0, snapshot.Records[0].AmountPaid)
			},
		},
		{
			name: "Falha na origem mantém o snapshot anterior",
			setup: func(source *mocks.MockRowSource, snapshotStore *store.SnapshotStore) {
				snapshotStore.Replace([]domain.SalesRecord{{ID: "antigo"}})
				source.EXPECT().LoadRows(gomock.Any()).Return(nil, errors.New("arquivo não encontrado"))
			},
			validate: func(t *testing.T, result *domain.RefreshResult, err error, snapshotStore *store.SnapshotStore) {
				assert.ErrorContains(t, err, "arquivo não encontrado")
				assert.Nil(t, result)
				assert.Equal(t, uint64(1), snapshotStore.Version())
				assert.Equal(t, "antigo", snapshotStore.GetAll().Records[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockSource, snapshotStore := newRefreshService(ctrl, config.SnapshotRefresh{})
			tt.setup(mockSource, snapshotStore)

			result, err := service.Refresh(context.Background())
			tt.validate(t, result, err, snapshotStore)
		})
	}
}

func TestSnapshotRefreshService_RefreshAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newRefreshService(ctrl, config.SnapshotRefresh{})
	service.refreshRunning = true

	_, err := service.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshRunning)
	assert.False(t, service.TriggerManualSync())
}

func TestSnapshotRefreshService_StartLoadsOnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockSource, snapshotStore := newRefreshService(ctrl, config.SnapshotRefresh{LoadOnStart: true, Enabled: false})
	mockSource.EXPECT().LoadRows(gomock.Any()).Return([]map[string]any{{"sales_agent": "A"}}, nil)

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, uint64(1), snapshotStore.Version())

	status := service.GetStatus()
	assert.Equal(t, uint64(1), status["snapshot_version"])
	assert.Equal(t, false, status["refresh_running"])
	assert.NotNil(t, status["last_result"])
}

func TestSnapshotRefreshService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newRefreshService(ctrl, config.SnapshotRefresh{Enabled: true, CronSchedule: "not a cron"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}

func TestSnapshotRefreshService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockSource, snapshotStore := newRefreshService(ctrl, config.SnapshotRefresh{})
	mockSource.EXPECT().LoadRows(gomock.Any()).Return([]map[string]any{{"sales_agent": "A"}}, nil)

	assert.True(t, service.TriggerManualSync())
	assert.Eventually(t, func() bool {
		return snapshotStore.Version() == 1
	}, time.Second, 10*time.Millisecond)
}
