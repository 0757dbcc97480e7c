package ingesting

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
)

// PostgresSource lê as vendas persistidas na tabela sales_records
type PostgresSource struct {
	repo repository.SalesRecordRepository
}

func NewPostgresSource(repo repository.SalesRecordRepository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) LoadRows(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar vendas do banco de dados")
	}
	return rows, nil
}
