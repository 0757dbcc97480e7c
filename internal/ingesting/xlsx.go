package ingesting

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XLSXFileSource lê uma planilha Excel. Sem nome de planilha, usa a primeira.
type XLSXFileSource struct {
	path  string
	sheet string
}

func NewXLSXFileSource(path, sheet string) *XLSXFileSource {
	return &XLSXFileSource{path: path, sheet: sheet}
}

func (s *XLSXFileSource) Name() string {
	return "xlsx:" + s.path
}

func (s *XLSXFileSource) LoadRows(ctx context.Context) ([]map[string]any, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir planilha %s", s.path)
	}
	defer f.Close()

	return readWorkbook(ctx, f, s.sheet)
}

// ParseXLSX lê a planilha de um reader, como um upload
func ParseXLSX(ctx context.Context, reader io.Reader, sheet string) ([]map[string]any, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler planilha")
	}
	defer f.Close()

	return readWorkbook(ctx, f, sheet)
}

func readWorkbook(ctx context.Context, f *excelize.File, sheet string) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao obter linhas da planilha %q", sheet)
	}

	return rowsFromTable(table)
}
