package analytics

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Row é uma linha bruta vinda da ingestão: chaves arbitrárias, valores sem tipo
type Row map[string]any

// defaultPaymentMethod é usado quando o link da fatura não identifica o meio de pagamento
const defaultPaymentMethod = "paypal"

// normalization acompanha os campos que caíram no valor padrão durante a conversão
type normalization struct {
	row       Row
	defaulted map[CanonicalField]int
}

// Normalize converte uma linha bruta em um SalesRecord tipado. Nunca falha:
// números inválidos viram 0, textos ausentes viram "" e booleanos não reconhecidos viram false.
func Normalize(row Row) domain.SalesRecord {
	n := normalization{row: row}
	return n.record()
}

// NormalizeRows normaliza um lote de linhas e relata quantos valores foram substituídos por padrão
func NormalizeRows(rows []Row) ([]domain.SalesRecord, domain.Diagnostics) {
	records := make([]domain.SalesRecord, 0, len(rows))
	defaulted := make(map[CanonicalField]int)

	for _, row := range rows {
		n := normalization{row: row, defaulted: defaulted}
		records = append(records, n.record())
	}

	var diagnostics domain.Diagnostics
	for _, field := range sortedCanonicalFields() {
		diagnostics.Add(domain.WarningDefaultedField, defaulted[field], "valores inválidos substituídos por padrão no campo %s", field)
	}

	return records, diagnostics
}

func (n normalization) record() domain.SalesRecord {
	record := domain.SalesRecord{
		ID:             n.str(CanonicalID),
		CustomerName:   n.str(CanonicalCustomerName),
		Email:          n.str(CanonicalEmail),
		Phone:          n.str(CanonicalPhone),
		Country:        n.str(CanonicalCountry),
		Agent:          n.str(CanonicalAgent),
		Closer:         n.str(CanonicalCloser),
		Team:           n.str(CanonicalTeam),
		Product:        n.str(CanonicalProduct),
		ServiceTier:    n.str(CanonicalServiceTier),
		InvoiceLink:    n.str(CanonicalInvoiceLink),
		AmountPaid:     n.number(CanonicalAmount),
		Commission:     n.number(CanonicalCommission),
		DurationMonths: n.number(CanonicalDurationMonths),
		SignupDate:     n.date(CanonicalSignupDate),
		EndDate:        n.date(CanonicalEndDate),
		DataMonth:      n.str(CanonicalDataMonth),
		DataYear:       n.str(CanonicalDataYear),
	}

	record.PaymentMethod = n.str(CanonicalPaymentMethod)
	if record.PaymentMethod == "" {
		record.PaymentMethod = derivePaymentMethod(record.InvoiceLink)
	}

	if _, ok := n.lookup(CanonicalIsLongTerm); ok {
		record.IsLongTerm = n.boolean(CanonicalIsLongTerm)
	} else {
		record.IsLongTerm = record.DurationMonths >= longTermMonths
	}

	return record
}

// lookup retorna o primeiro valor não vazio entre os apelidos do campo
func (n normalization) lookup(field CanonicalField) (any, bool) {
	mapping, ok := FieldMappings[field]
	if !ok || n.row == nil {
		return nil, false
	}

	for _, alias := range mapping.Aliases {
		value, exists := n.row[alias]
		if !exists || value == nil {
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return value, true
	}

	return nil, false
}

func (n normalization) str(field CanonicalField) string {
	value, ok := n.lookup(field)
	if !ok {
		return ""
	}
	return toString(value)
}

func (n normalization) number(field CanonicalField) float64 {
	value, ok := n.lookup(field)
	if !ok {
		return 0
	}

	parsed, valid := toNumber(value)
	if !valid {
		n.markDefaulted(field)
		return 0
	}
	return parsed
}

func (n normalization) boolean(field CanonicalField) bool {
	value, ok := n.lookup(field)
	if !ok {
		return false
	}
	return toBool(value)
}

func (n normalization) date(field CanonicalField) string {
	value, ok := n.lookup(field)
	if !ok {
		return ""
	}

	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("02/01/2006")
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format("02/01/2006")
	}

	return toString(value)
}

func (n normalization) markDefaulted(field CanonicalField) {
	if n.defaulted != nil {
		n.defaulted[field]++
	}
}

func toString(value any) (result string) {
	defer func() {
		if recover() != nil {
			result = ""
		}
	}()

	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// numericText aceita decimais simples ou agrupamento de milhar com vírgula a cada três dígitos
var numericText = regexp.MustCompile(`^[+-]?(\d{1,3}(,\d{3})+(\.\d*)?|\d+(\.\d*)?([eE][+-]?\d+)?|\.\d+([eE][+-]?\d+)?)$`)

// toNumber aceita números nativos e textos como "1200", "1,200.50" ou "$ 99".
// Textos fora desse formato ("1,2,3", "12 34", "$$5$") são inválidos.
func toNumber(value any) (result float64, valid bool) {
	defer func() {
		if recover() != nil {
			result, valid = 0, false
		}
	}()

	if s, ok := value.(string); ok {
		cleaned, ok := cleanNumeric(s)
		if !ok {
			return 0, false
		}
		value = cleaned
	}

	parsed, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// cleanNumeric remove um único símbolo de moeda no início ou no fim e as vírgulas de milhar
func cleanNumeric(s string) (string, bool) {
	s = strings.Trim(s, " \t\u00a0")

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	switch {
	case strings.HasPrefix(s, "$"):
		s = strings.TrimLeft(s[1:], " \u00a0")
	case strings.HasSuffix(s, "$"):
		s = strings.TrimRight(s[:len(s)-1], " \u00a0")
	}

	s = sign + s
	if !numericText.MatchString(s) {
		return "", false
	}
	return strings.ReplaceAll(s, ",", ""), true
}

// toBool só reconhece o literal "true" (em qualquer caixa) ou um bool nativo
func toBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// derivePaymentMethod mantém o link quando ele começa com "w"; caso contrário assume paypal
func derivePaymentMethod(invoiceLink string) string {
	if strings.HasPrefix(strings.ToLower(invoiceLink), "w") {
		return invoiceLink
	}
	return defaultPaymentMethod
}

func sortedCanonicalFields() []CanonicalField {
	return []CanonicalField{
		CanonicalID, CanonicalCustomerName, CanonicalEmail, CanonicalPhone, CanonicalCountry,
		CanonicalAgent, CanonicalCloser, CanonicalTeam, CanonicalProduct, CanonicalServiceTier,
		CanonicalPaymentMethod, CanonicalInvoiceLink, CanonicalAmount, CanonicalCommission,
		CanonicalDurationMonths, CanonicalSignupDate, CanonicalEndDate, CanonicalDataMonth,
		CanonicalDataYear, CanonicalIsLongTerm,
	}
}
