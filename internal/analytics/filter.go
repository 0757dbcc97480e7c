package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultTopProducts é a quantidade de produtos exibidos individualmente; o restante vira "Other"
const DefaultTopProducts = 5

// Filter aplica filtros por campo sobre um snapshot. O top de produtos usado pelo
// bucket "Other" é calculado uma única vez sobre o snapshot completo, de modo que
// a participação no bucket não dependa dos demais filtros ativos.
type Filter struct {
	records     []domain.SalesRecord
	topProducts []string
	topSet      map[string]struct{}
}

// NewFilter prepara o filtro para o snapshot. topN <= 0 usa DefaultTopProducts.
func NewFilter(records []domain.SalesRecord, topN int) *Filter {
	if topN <= 0 {
		topN = DefaultTopProducts
	}

	top := TopKeys(GroupBy(records, domain.DimensionProduct), topN)
	topSet := make(map[string]struct{}, len(top))
	for _, product := range top {
		topSet[product] = struct{}{}
	}

	return &Filter{
		records:     records,
		topProducts: top,
		topSet:      topSet,
	}
}

// TopProducts retorna os produtos de maior receita do snapshot completo
func (f *Filter) TopProducts() []string {
	top := make([]string, len(f.topProducts))
	copy(top, f.topProducts)
	return top
}

// Apply retorna um novo slice com os registros que atendem a todos os filtros ativos.
// Campos em branco não restringem; um filtro vazio devolve o snapshot inteiro.
func (f *Filter) Apply(config domain.FilterConfig) []domain.SalesRecord {
	active := config.Active()

	result := make([]domain.SalesRecord, 0, len(f.records))
	for _, record := range f.records {
		if f.matches(record, active) {
			result = append(result, record)
		}
	}

	return result
}

func (f *Filter) matches(record domain.SalesRecord, active domain.FilterConfig) bool {
	for field, value := range active {
		if !domain.IsFilterable(field) {
			continue
		}

		switch {
		case field == domain.FieldName:
			if !strings.Contains(strings.ToLower(record.CustomerName), strings.ToLower(value)) {
				return false
			}
		case field == domain.FieldProduct && value == domain.OtherProduct:
			if _, isTop := f.topSet[strings.TrimSpace(record.Product)]; isTop {
				return false
			}
		default:
			if strings.TrimSpace(FieldValue(record, field)) != value {
				return false
			}
		}
	}
	return true
}

// Options lista os valores distintos de cada campo filtrável, ordenados.
// Para produto, retorna o top de receita seguido de "Other".
func (f *Filter) Options() domain.FilterOptions {
	options := make(domain.FilterOptions, len(domain.FilterableFields))

	for _, field := range domain.FilterableFields {
		if field == domain.FieldProduct {
			options[field] = append(f.TopProducts(), domain.OtherProduct)
			continue
		}

		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, record := range f.records {
			v := strings.TrimSpace(FieldValue(record, field))
			if v == "" || v == "undefined" || v == "null" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		sort.Strings(values)
		options[field] = values
	}

	return options
}

// FieldValue retorna a representação textual do campo usada na comparação exata
func FieldValue(record domain.SalesRecord, field domain.Field) string {
	switch field {
	case domain.FieldName:
		return record.CustomerName
	case domain.FieldAgent:
		return record.Agent
	case domain.FieldCloser:
		return record.Closer
	case domain.FieldTeam:
		return record.Team
	case domain.FieldCountry:
		return record.Country
	case domain.FieldProduct:
		return record.Product
	case domain.FieldServiceTier:
		return record.ServiceTier
	case domain.FieldPaymentMethod:
		return record.PaymentMethod
	case domain.FieldDataMonth:
		return record.DataMonth
	case domain.FieldAmount:
		return strconv.FormatFloat(record.AmountPaid, 'f', -1, 64)
	default:
		return ""
	}
}
