package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/ingesting"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)
	logrus.Debugf("Configuração de análise: %s", utils.PrettyJson(cfg.Analytics))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// O banco só é necessário quando a origem dos registros é uma tabela
	var salesRecordRepo repository.SalesRecordRepository
	if cfg.Source.Kind == config.SourcePostgres {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		table := cfg.Source.Table
		if table == "" {
			table = repository.DefaultSalesRecordTable
		}
		if err := postgres.CheckSalesTable(ctx, pgConn, table); err != nil {
			logrus.WithError(err).Fatal("Tabela de vendas indisponível")
		}

		salesRecordRepo = repository.NewSalesRecordRepository(pgConn, table)
	}

	source, err := ingesting.NewRowSource(cfg.Source, salesRecordRepo)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar origem dos registros de venda")
	}

	snapshotStore := store.NewSnapshotStore()

	var resultCache *analyzing.ResultCache
	if cfg.Cache.Enabled {
		resultCache, err = analyzing.NewResultCache(cfg.Cache.Size, snapshotStore)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao criar cache de resultados")
		}
		defer resultCache.Close()
	}

	analysisService := analyzing.NewService(snapshotStore, resultCache, cfg)
	rankingService := ranking.NewLeaderboardService(analysisService, resultCache, cfg)
	forecastService := forecasting.NewService(analysisService, resultCache, cfg)

	snapshotRefreshService := scheduler.NewSnapshotRefreshService(source, snapshotStore, cfg)

	// Faz a carga inicial e inicia o agendador em background
	if err := snapshotRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do snapshot")
	} else {
		logrus.WithField("snapshot_version", snapshotStore.Version()).Info("Agendador de recarga do snapshot iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Snapshot:  snapshotStore,
		Analysis:  analysisService,
		Ranking:   rankingService,
		Forecast:  forecastService,
		Refresher: snapshotRefreshService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
