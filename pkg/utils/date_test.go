package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "Dia/mês/ano", input: "15/02/2024", expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Ano com dois dígitos", input: "1/3/24", expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "Com horário", input: "15/02/2024 10:30", expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "ISO", input: "2024-02-15", expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339", input: "2024-02-15T23:10:00Z", expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Genérico", input: "Feb 15, 2024", expected: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Dia inexistente", input: "31/02/2024", wantErr: true},
		{name: "29 de fevereiro fora de ano bissexto", input: "29/02/2023", wantErr: true},
		{name: "29 de fevereiro em ano bissexto", input: "29/02/2024", expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "Dia zero", input: "00/03/2024", wantErr: true},
		{name: "Mês inválido", input: "01/13/2024", wantErr: true},
		{name: "Texto", input: "not-a-date", wantErr: true},
		{name: "Vazio", input: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseFlexibleDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnparseableDate)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, date)
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	friday := time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), StartOfWeek(friday))

	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, StartOfWeek(sunday))
}

func TestSafeDivideAndClamp(t *testing.T) {
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 2.5, SafeDivide(5, 2))
	assert.Equal(t, 0.5, Clamp(0.1, 0.5, 0.95))
	assert.Equal(t, 0.95, Clamp(3, 0.5, 0.95))
	assert.Equal(t, 1.23, RoundWithTwoDecimalPlace(1.234))
}
