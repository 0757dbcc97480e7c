package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/ingesting"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	idLength         = 12
	characters       = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	defaultBatchSize = 500
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
	id              TEXT PRIMARY KEY,
	customer_name   TEXT,
	email           TEXT,
	phone           TEXT,
	country         TEXT,
	sales_agent     TEXT,
	closing_agent   TEXT,
	sales_team      TEXT,
	product_type    TEXT,
	service_tier    TEXT,
	payment_method  TEXT,
	invoice_link    TEXT,
	amount_paid     NUMERIC(14, 2),
	commission      NUMERIC(14, 2),
	duration_months NUMERIC(6, 2),
	signup_date     DATE,
	end_date        DATE,
	data_month      TEXT,
	data_year       TEXT,
	is_long_term    BOOLEAN DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type options struct {
	file        string
	table       string
	batchSize   int
	createTable bool
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de importação de vendas...")
}

func parseOptions() options {
	opts := options{}
	flag.StringVar(&opts.file, "file", "data/sales.csv", "arquivo CSV com as vendas")
	flag.StringVar(&opts.table, "table", repository.DefaultSalesRecordTable, "tabela de destino")
	flag.IntVar(&opts.batchSize, "batch", defaultBatchSize, "linhas por INSERT")
	flag.BoolVar(&opts.createTable, "create", false, "cria a tabela se não existir")
	flag.Parse()

	if opts.batchSize <= 0 {
		opts.batchSize = defaultBatchSize
	}
	return opts
}

func generateID() string {
	id, _ := gonanoid.Generate(characters, idLength)
	return id
}

// toColumnRow converte o registro normalizado nas colunas da tabela de vendas.
// Registros sem ID recebem um novo; datas que não puderem ser lidas ficam NULL.
func toColumnRow(record domain.SalesRecord) map[string]any {
	id := record.ID
	if id == "" {
		id = generateID()
	}

	return map[string]any{
		"id":              id,
		"customer_name":   record.CustomerName,
		"email":           record.Email,
		"phone":           record.Phone,
		"country":         record.Country,
		"sales_agent":     record.Agent,
		"closing_agent":   record.Closer,
		"sales_team":      record.Team,
		"product_type":    record.Product,
		"service_tier":    record.ServiceTier,
		"payment_method":  record.PaymentMethod,
		"invoice_link":    record.InvoiceLink,
		"amount_paid":     record.AmountPaid,
		"commission":      record.Commission,
		"duration_months": record.DurationMonths,
		"signup_date":     repository.ParseDateColumn(record.SignupDate, utils.ParseFlexibleDate),
		"end_date":        repository.ParseDateColumn(record.EndDate, utils.ParseFlexibleDate),
		"data_month":      record.DataMonth,
		"data_year":       record.DataYear,
		"is_long_term":    record.IsLongTerm,
	}
}

// batches divide as linhas em lotes de no máximo size itens
func batches(rows []map[string]any, size int) [][]map[string]any {
	result := make([][]map[string]any, 0, len(rows)/size+1)
	for start := 0; start < len(rows); start += size {
		result = append(result, rows[start:min(start+size, len(rows))])
	}
	return result
}

func loadRows(ctx context.Context, path string) ([]map[string]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir %s: %w", path, err)
	}
	defer file.Close()

	rawRows, err := ingesting.ParseCSV(ctx, file)
	if err != nil {
		return nil, err
	}

	input := make([]analytics.Row, len(rawRows))
	for i, row := range rawRows {
		input[i] = analytics.Row(row)
	}

	records, diagnostics := analytics.NormalizeRows(input)
	for _, warning := range diagnostics.Warnings {
		logrus.WithField("count", warning.Count).Warn(warning.Message)
	}

	rows := make([]map[string]any, len(records))
	for i, record := range records {
		rows[i] = toColumnRow(record)
	}
	return rows, nil
}

func main() {
	setupLogger()
	opts := parseOptions()

	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao carregar configuração")
	}

	rows, err := loadRows(ctx, opts.file)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao ler arquivo de vendas")
	}
	logrus.Infof("Total de %d vendas lidas de %s", len(rows), opts.file)

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco")
	}
	defer conn.Close()

	startTime := time.Now()
	inserted := 0

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if opts.createTable {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(createTableSQL, opts.table)); err != nil {
				return fmt.Errorf("erro ao criar tabela %s: %w", opts.table, err)
			}
		} else if err := postgres.CheckSalesTable(ctx, tx, opts.table); err != nil {
			return fmt.Errorf("use -create para criar a tabela: %w", err)
		}

		repo := repository.NewSalesRecordRepository(tx, opts.table)
		for i, batch := range batches(rows, opts.batchSize) {
			affected, err := repo.InsertRows(ctx, batch)
			if err != nil {
				return fmt.Errorf("erro no lote %d: %w", i+1, err)
			}
			inserted += affected
			logrus.Infof("Progresso: lote %d com %d linhas (%d inseridas)", i+1, len(batch), affected)
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("ERRO na importação, transação revertida")
	}

	logrus.WithFields(logrus.Fields{
		"inserted": inserted,
		"skipped":  len(rows) - inserted,
	}).Infof("Importação concluída em %v!", time.Since(startTime))
}
