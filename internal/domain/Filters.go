package domain

import "strings"

// Field identifica um campo filtrável do SalesRecord
type Field string

const (
	FieldName          Field = "name"
	FieldAgent         Field = "agent"
	FieldCloser        Field = "closer"
	FieldTeam          Field = "team"
	FieldCountry       Field = "country"
	FieldProduct       Field = "product"
	FieldServiceTier   Field = "tier"
	FieldPaymentMethod Field = "payment"
	FieldDataMonth     Field = "month"
	FieldAmount        Field = "amount"
)

// OtherProduct é o valor especial que agrupa os produtos fora do top de receita
const OtherProduct = "Other"

// FilterableFields lista os campos aceitos pelo motor de filtros, na ordem de exibição
var FilterableFields = []Field{
	FieldName,
	FieldAmount,
	FieldAgent,
	FieldCloser,
	FieldProduct,
	FieldServiceTier,
	FieldTeam,
	FieldDataMonth,
	FieldCountry,
	FieldPaymentMethod,
}

// FilterConfig associa cada campo ao valor filtrado. Valor em branco = sem restrição.
type FilterConfig map[Field]string

// IsEmpty indica se nenhum campo possui restrição
func (f FilterConfig) IsEmpty() bool {
	for _, value := range f {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// Active retorna apenas os campos com restrição, com valores sem espaços nas pontas
func (f FilterConfig) Active() FilterConfig {
	active := make(FilterConfig, len(f))
	for field, value := range f {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			active[field] = trimmed
		}
	}
	return active
}

// IsFilterable indica se o campo é reconhecido pelo motor de filtros
func IsFilterable(field Field) bool {
	for _, f := range FilterableFields {
		if f == field {
			return true
		}
	}
	return false
}

// FilterOptions lista os valores distintos disponíveis por campo
type FilterOptions map[Field][]string
