package ingesting

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// CSVFileSource lê um arquivo CSV local com cabeçalho
type CSVFileSource struct {
	path string
}

func NewCSVFileSource(path string) *CSVFileSource {
	return &CSVFileSource{path: path}
}

func (s *CSVFileSource) Name() string {
	return "csv:" + s.path
}

func (s *CSVFileSource) LoadRows(ctx context.Context) ([]map[string]any, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir arquivo CSV %s", s.path)
	}
	defer file.Close()

	return ParseCSV(ctx, file)
}

// HTTPCSVSource baixa um CSV publicado em uma URL (ex.: planilha exportada)
type HTTPCSVSource struct {
	url   string
	fetch func(ctx context.Context, url string) ([]byte, error)
}

func NewHTTPCSVSource(url string) *HTTPCSVSource {
	return &HTTPCSVSource{url: url, fetch: utils.MakeRequest}
}

func (s *HTTPCSVSource) Name() string {
	return "http:" + s.url
}

func (s *HTTPCSVSource) LoadRows(ctx context.Context) ([]map[string]any, error) {
	data, err := s.fetch(ctx, s.url)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao baixar CSV de %s", s.url)
	}

	return ParseCSV(ctx, bytes.NewReader(data))
}

// ParseCSV lê todas as linhas do CSV. Linhas com quantidade de colunas
// diferente do cabeçalho são aceitas.
func ParseCSV(ctx context.Context, reader io.Reader) ([]map[string]any, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	table := make([][]string, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "erro ao interpretar CSV")
		}
		table = append(table, record)
	}

	return rowsFromTable(table)
}
