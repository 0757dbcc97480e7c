package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestFilter_Apply(t *testing.T) {
	records := scenarioRecords()
	filter := NewFilter(records, 1)

	tests := []struct {
		name        string
		config      domain.FilterConfig
		expectedIDs []string
	}{
		{
			name:        "Filtro por agente retorna apenas os registros do agente",
			config:      domain.FilterConfig{domain.FieldAgent: "A"},
			expectedIDs: []string{"1", "3"},
		},
		{
			name:        "Filtro vazio retorna o snapshot inteiro",
			config:      domain.FilterConfig{},
			expectedIDs: []string{"1", "2", "3"},
		},
		{
			name:        "Valores em branco não restringem",
			config:      domain.FilterConfig{domain.FieldAgent: "  ", domain.FieldTeam: ""},
			expectedIDs: []string{"1", "2", "3"},
		},
		{
			name:        "Nome usa busca parcial sem diferenciar caixa",
			config:      domain.FilterConfig{domain.FieldName: "silva"},
			expectedIDs: []string{"1"},
		},
		{
			name:        "Filtros combinados são conjuntivos",
			config:      domain.FilterConfig{domain.FieldAgent: "A", domain.FieldName: "ana"},
			expectedIDs: []string{"3"},
		},
		{
			name:        "Other seleciona produtos fora do top",
			config:      domain.FilterConfig{domain.FieldProduct: domain.OtherProduct},
			expectedIDs: []string{"1", "3"},
		},
		{
			name:        "Produto do top usa comparação exata",
			config:      domain.FilterConfig{domain.FieldProduct: "Silver"},
			expectedIDs: []string{"2"},
		},
		{
			name:        "Valor com espaços é aparado",
			config:      domain.FilterConfig{domain.FieldAgent: " B "},
			expectedIDs: []string{"2"},
		},
		{
			name:        "Campo desconhecido é ignorado",
			config:      domain.FilterConfig{domain.Field("unknown"): "x"},
			expectedIDs: []string{"1", "2", "3"},
		},
		{
			name:        "Sem correspondência retorna vazio",
			config:      domain.FilterConfig{domain.FieldAgent: "Z"},
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.Apply(tt.config)

			ids := make([]string, 0, len(result))
			for _, record := range result {
				ids = append(ids, record.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestFilter_ApplyReturnsNewSlice(t *testing.T) {
	records := scenarioRecords()
	filter := NewFilter(records, 0)

	result := filter.Apply(domain.FilterConfig{})
	result[0].Agent = "changed"

	assert.Equal(t, "A", records[0].Agent)
}

func TestFilter_TopProductsComputedOnFullSnapshot(t *testing.T) {
	records := []domain.SalesRecord{
		{ID: "1", Agent: "A", Product: "P1", AmountPaid: 500},
		{ID: "2", Agent: "B", Product: "P2", AmountPaid: 400},
		{ID: "3", Agent: "B", Product: "P3", AmountPaid: 10},
	}
	filter := NewFilter(records, 2)

	assert.Equal(t, []string{"P1", "P2"}, filter.TopProducts())

	// P3 continua em Other mesmo quando o filtro de agente deixa apenas ele e P2
	result := filter.Apply(domain.FilterConfig{domain.FieldAgent: "B", domain.FieldProduct: domain.OtherProduct})
	assert.Len(t, result, 1)
	assert.Equal(t, "3", result[0].ID)
}

func TestFilter_Options(t *testing.T) {
	records := append(scenarioRecords(),
		domain.SalesRecord{ID: "4", Agent: "undefined", Country: "null", Product: "Bronze", AmountPaid: 1},
	)
	filter := NewFilter(records, 2)

	options := filter.Options()

	assert.Equal(t, []string{"A", "B"}, options[domain.FieldAgent])
	assert.Empty(t, options[domain.FieldCountry])
	assert.Equal(t, []string{"Silver", "Gold", domain.OtherProduct}, options[domain.FieldProduct])
	assert.Equal(t, []string{"1", "100", "300", "50"}, options[domain.FieldAmount])
}
