// Package ingesting carrega as linhas brutas de vendas das origens suportadas
package ingesting

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

var (
	ErrUnknownSource = errors.New("unknown source kind")
	ErrMissingHeader = errors.New("source has no header row")
)

// RowSource entrega as linhas brutas, com chaves e valores como vieram da origem
type RowSource interface {
	Name() string
	LoadRows(ctx context.Context) ([]map[string]any, error)
}

// NewRowSource escolhe a origem configurada. repo só é usado para a origem postgres.
func NewRowSource(cfg config.Source, repo repository.SalesRecordRepository) (RowSource, error) {
	switch cfg.Kind {
	case config.SourceCSV:
		return NewCSVFileSource(cfg.Path), nil
	case config.SourceXLSX:
		return NewXLSXFileSource(cfg.Path, cfg.Sheet), nil
	case config.SourceHTTP:
		return NewHTTPCSVSource(cfg.URL), nil
	case config.SourcePostgres:
		if repo == nil {
			return nil, errors.Wrap(ErrUnknownSource, "origem postgres sem repositório configurado")
		}
		return NewPostgresSource(repo), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSource, "tipo %q", cfg.Kind)
	}
}

// rowsFromTable converte uma tabela com cabeçalho em linhas chave/valor.
// Células ausentes ficam fora do mapa; linhas totalmente vazias são ignoradas.
func rowsFromTable(table [][]string) ([]map[string]any, error) {
	if len(table) == 0 {
		return nil, ErrMissingHeader
	}

	header := make([]string, len(table[0]))
	for i, column := range table[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
	}

	rows := make([]map[string]any, 0, len(table)-1)
	for _, cells := range table[1:] {
		row := make(map[string]any, len(header))
		empty := true
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = cell
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
