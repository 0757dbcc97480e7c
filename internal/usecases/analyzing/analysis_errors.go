package analyzing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de análise
var (
	// Erros de validação
	ErrUnsupportedDimension = errors.New("unsupported dimension")
	ErrInvalidMetric        = errors.New("invalid metric")
	ErrInvalidGranularity   = errors.New("invalid granularity")
	ErrInvalidPagination    = errors.New("invalid pagination")
	ErrInvalidHorizon       = errors.New("invalid forecast horizon")
	ErrInvalidMonth         = errors.New("invalid month")
	ErrEmptyRecords         = errors.New("no records to add")

	// Erros de armazenamento
	ErrAddRecords = errors.New("error adding records to snapshot")
)

// AnalysisError é um erro com contexto adicional para as consultas do painel
type AnalysisError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// ErrorCode retorna o código de erro para a API
func (e *AnalysisError) ErrorCode() string {
	return e.Code
}

// Unwrap retorna o erro subjacente
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError cria um novo AnalysisError
func NewAnalysisError(err error, code string, details string) *AnalysisError {
	return &AnalysisError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
