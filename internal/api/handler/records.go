package handler

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/ingesting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const (
	uploadField     = "file"
	maxUploadMemory = 10 << 20
)

var errUnsupportedUpload = errors.New("tipo de arquivo não suportado")

type addRecordsRequest struct {
	Records []analytics.Row `json:"records"`
}

// AddRecords inclui registros no snapshot. Aceita um array JSON de linhas,
// um objeto {"records": [...]} ou o upload de um arquivo CSV/XLSX no campo file.
func AddRecords(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - AddRecords")

		rows, err := decodeRows(r)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Corpo da requisição excede o limite", nil)
				return
			}

			logger.WithError(err).Warn("Corpo da requisição inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", err.Error())
			return
		}

		response, err := service.AddRecords(rows)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao adicionar registros")
			return
		}

		writeJSON(w, r, http.StatusCreated, response)
	}
}

func decodeRows(r *http.Request) ([]analytics.Row, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return uploadedRows(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler corpo da requisição")
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var rows []analytics.Row
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, errors.Wrap(err, "JSON inválido")
		}
		return rows, nil
	}

	var request addRecordsRequest
	if err := json.Unmarshal(body, &request); err != nil {
		return nil, errors.Wrap(err, "JSON inválido")
	}

	return request.Records, nil
}

func uploadedRows(r *http.Request) ([]analytics.Row, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, errors.Wrap(err, "erro ao ler formulário")
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, errors.Wrapf(err, "arquivo ausente no campo %s", uploadField)
	}
	defer file.Close()

	var table []map[string]any
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".xlsx":
		table, err = ingesting.ParseXLSX(r.Context(), file, r.FormValue("sheet"))
	case ".csv", ".txt":
		table, err = ingesting.ParseCSV(r.Context(), file)
	default:
		return nil, errors.Wrapf(errUnsupportedUpload, "extensão %q", ext)
	}
	if err != nil {
		return nil, err
	}

	log.ForContext(r.Context()).WithFields(log.Fields{
		"file": header.Filename,
		"rows": len(table),
	}).Info("Arquivo de registros recebido")

	rows := make([]analytics.Row, len(table))
	for i, row := range table {
		rows[i] = analytics.Row(row)
	}

	return rows, nil
}
