package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		validate func(t *testing.T, record domain.SalesRecord)
	}{
		{
			name: "Apelidos do primeiro formato são reconhecidos",
			row: Row{
				"Customer_Name": "Maria Silva",
				"sales_agent":   "Carlos",
				"closing_agent": "Paula",
				"sales_team":    "Alpha",
				"product_type":  "Gold",
				"amount_paid":   "1,200.50",
				"duration":      "12",
				"signup_date":   "01/02/2024",
				"Payment":       "stripe",
			},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, "Maria Silva", record.CustomerName)
				assert.Equal(t, "Carlos", record.Agent)
				assert.Equal(t, "Paula", record.Closer)
				assert.Equal(t, "Alpha", record.Team)
				assert.Equal(t, "Gold", record.Product)
				assert.Equal(t, 1200.50, record.AmountPaid)
				assert.Equal(t, 12.0, record.DurationMonths)
				assert.Equal(t, "01/02/2024", record.SignupDate)
				assert.Equal(t, "stripe", record.PaymentMethod)
				assert.True(t, record.IsLongTerm)
			},
		},
		{
			name: "Apelidos alternativos e números nativos",
			row: Row{
				"name":       "João",
				"agent":      "Bia",
				"program":    "Silver",
				"amount":     99,
				"commission": 9.9,
				"date":       time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, "João", record.CustomerName)
				assert.Equal(t, "Bia", record.Agent)
				assert.Equal(t, "Silver", record.Product)
				assert.Equal(t, 99.0, record.AmountPaid)
				assert.Equal(t, 9.9, record.Commission)
				assert.Equal(t, "05/03/2024", record.SignupDate)
				assert.False(t, record.IsLongTerm)
			},
		},
		{
			name: "Primeiro apelido em branco cede para o próximo",
			row:  Row{"amount_paid": "  ", "amount": "$ 250"},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, 250.0, record.AmountPaid)
			},
		},
		{
			name: "Valores inválidos viram padrão",
			row:  Row{"amount_paid": "abc", "duration_months": nil},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, 0.0, record.AmountPaid)
				assert.Equal(t, 0.0, record.DurationMonths)
				assert.Equal(t, "", record.Agent)
				assert.False(t, record.IsLongTerm)
			},
		},
		{
			name: "Meio de pagamento derivado do link da fatura",
			row:  Row{"invoice_link": "wise.com/pay/123"},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, "wise.com/pay/123", record.PaymentMethod)
			},
		},
		{
			name: "Sem link e sem meio de pagamento assume paypal",
			row:  Row{"invoice_link": "https://paypal.me/x"},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, "paypal", record.PaymentMethod)
			},
		},
		{
			name: "Flag explícita de longo prazo tem precedência sobre a duração",
			row:  Row{"is_long_term": "TRUE", "duration_months": 3},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.True(t, record.IsLongTerm)
			},
		},
		{
			name: "Sem a flag, longo prazo a partir de 12 meses",
			row:  Row{"duration_months": "11.9"},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.False(t, record.IsLongTerm)
				assert.True(t, Normalize(Row{"duration_months": 12}).IsLongTerm)
			},
		},
		{
			name: "Somente o literal true é verdadeiro",
			row:  Row{"is_long_term": "yes", "duration_months": 24},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.False(t, record.IsLongTerm)
			},
		},
		{
			name: "Linha vazia",
			row:  Row{},
			validate: func(t *testing.T, record domain.SalesRecord) {
				assert.Equal(t, domain.SalesRecord{PaymentMethod: "paypal"}, record)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Normalize(tt.row))
		})
	}
}

func TestNormalizeRows(t *testing.T) {
	rows := []Row{
		{"amount_paid": "100"},
		{"amount_paid": "abc", "commission": "x"},
		{"amount_paid": "n/a"},
		nil,
	}

	records, diagnostics := NormalizeRows(rows)

	assert.Len(t, records, len(rows))
	assert.Equal(t, 100.0, records[0].AmountPaid)
	assert.Equal(t, 0.0, records[1].AmountPaid)
	assert.Equal(t, 3, diagnostics.Count(domain.WarningDefaultedField))
	assert.Len(t, diagnostics.Warnings, 2)
}

func TestNormalize_TotalParsing(t *testing.T) {
	inputs := []Row{
		nil,
		{"amount_paid": []int{1, 2}},
		{"amount_paid": map[string]any{"x": 1}},
		{"signup_date": 42, "is_long_term": 1},
		{"Customer_Name": struct{}{}},
	}

	for _, row := range inputs {
		assert.NotPanics(t, func() {
			Normalize(row)
		})
	}

	malformed := []string{"1,2,3", "12 34", "1,,0", "$$5$", "1 000 000", "1,23", "12,3456", "$", "-", "5$$"}
	for _, text := range malformed {
		t.Run("malformado "+text, func(t *testing.T) {
			records, diagnostics := NormalizeRows([]Row{{"amount_paid": text}})
			assert.Equal(t, 0.0, records[0].AmountPaid)
			assert.Equal(t, 1, diagnostics.Count(domain.WarningDefaultedField))
		})
	}

	wellFormed := map[string]float64{
		"1,234.5":     1234.5,
		"1,234,567":   1234567,
		"$99":         99,
		"99$":         99,
		"$ 1,000.25":  1000.25,
		"-$5":         -5,
		" 42 ":        42,
		"0.5":         0.5,
		"1200\u00a0$": 1200,
	}
	for text, expected := range wellFormed {
		t.Run("válido "+text, func(t *testing.T) {
			records, diagnostics := NormalizeRows([]Row{{"amount_paid": text}})
			assert.Equal(t, expected, records[0].AmountPaid)
			assert.Equal(t, 0, diagnostics.Count(domain.WarningDefaultedField))
		})
	}
}
