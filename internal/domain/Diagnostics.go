package domain

import "fmt"

// WarningCode classifica uma degradação silenciosa do motor
type WarningCode string

const (
	WarningUnparseableDate     WarningCode = "UNPARSEABLE_DATE"
	WarningInsufficientHistory WarningCode = "INSUFFICIENT_HISTORY"
	WarningDefaultedField      WarningCode = "DEFAULTED_FIELD"
	WarningZeroBaseline        WarningCode = "ZERO_BASELINE"
)

// Warning descreve uma anomalia de dados que foi tratada sem erro
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Count   int         `json:"count"`
}

// Diagnostics acompanha os resultados do motor sem alterar o contrato de não falhar
type Diagnostics struct {
	Warnings []Warning `json:"warnings,omitempty"`
}

// Add registra um aviso, somando a contagem se o código e a mensagem já existirem
func (d *Diagnostics) Add(code WarningCode, count int, format string, args ...any) {
	if count <= 0 {
		return
	}
	message := fmt.Sprintf(format, args...)
	for i := range d.Warnings {
		if d.Warnings[i].Code == code && d.Warnings[i].Message == message {
			d.Warnings[i].Count += count
			return
		}
	}
	d.Warnings = append(d.Warnings, Warning{Code: code, Message: message, Count: count})
}

// Merge junta os avisos de outro diagnóstico
func (d *Diagnostics) Merge(other Diagnostics) {
	for _, w := range other.Warnings {
		d.Add(w.Code, w.Count, "%s", w.Message)
	}
}

// Count retorna a quantidade total registrada para um código
func (d Diagnostics) Count(code WarningCode) int {
	total := 0
	for _, w := range d.Warnings {
		if w.Code == code {
			total += w.Count
		}
	}
	return total
}

// IsEmpty indica se nenhum aviso foi registrado
func (d Diagnostics) IsEmpty() bool {
	return len(d.Warnings) == 0
}
