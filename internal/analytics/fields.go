// Package analytics implementa o motor puro de agregação e previsão de vendas:
// normalização, filtros, agrupamentos, séries temporais, ranking e previsão.
// Todas as funções são síncronas e não alteram os dados de entrada.
package analytics

// FieldType define como o valor bruto de um campo é convertido
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeBool   FieldType = "bool"
	FieldTypeDate   FieldType = "date"
)

// CanonicalField é o nome lógico de um atributo do registro de venda
type CanonicalField string

const (
	CanonicalID             CanonicalField = "id"
	CanonicalCustomerName   CanonicalField = "customer_name"
	CanonicalEmail          CanonicalField = "email"
	CanonicalPhone          CanonicalField = "phone"
	CanonicalCountry        CanonicalField = "country"
	CanonicalAgent          CanonicalField = "agent"
	CanonicalCloser         CanonicalField = "closer"
	CanonicalTeam           CanonicalField = "team"
	CanonicalProduct        CanonicalField = "product"
	CanonicalServiceTier    CanonicalField = "service_tier"
	CanonicalPaymentMethod  CanonicalField = "payment_method"
	CanonicalInvoiceLink    CanonicalField = "invoice_link"
	CanonicalAmount         CanonicalField = "amount"
	CanonicalCommission     CanonicalField = "commission"
	CanonicalDurationMonths CanonicalField = "duration_months"
	CanonicalSignupDate     CanonicalField = "signup_date"
	CanonicalEndDate        CanonicalField = "end_date"
	CanonicalDataMonth      CanonicalField = "data_month"
	CanonicalDataYear       CanonicalField = "data_year"
	CanonicalIsLongTerm     CanonicalField = "is_long_term"
)

// FieldMapping descreve os apelidos aceitos para um campo e o seu tipo.
// Os apelidos são consultados na ordem declarada; vence o primeiro não vazio.
type FieldMapping struct {
	Aliases []string
	Type    FieldType
}

// FieldMappings é a configuração declarativa consumida pelo Normalizer
var FieldMappings = map[CanonicalField]FieldMapping{
	CanonicalID:             {Aliases: []string{"id", "ID", "Id"}, Type: FieldTypeString},
	CanonicalCustomerName:   {Aliases: []string{"Customer_Name", "customer_name", "CustomerName", "customerName", "name"}, Type: FieldTypeString},
	CanonicalEmail:          {Aliases: []string{"email", "Email"}, Type: FieldTypeString},
	CanonicalPhone:          {Aliases: []string{"phone_clean", "phone", "Phone"}, Type: FieldTypeString},
	CanonicalCountry:        {Aliases: []string{"country", "Country", "region"}, Type: FieldTypeString},
	CanonicalAgent:          {Aliases: []string{"sales_agent", "agent", "salesAgent", "Agent"}, Type: FieldTypeString},
	CanonicalCloser:         {Aliases: []string{"closing_agent", "closer", "closingAgent", "Closer"}, Type: FieldTypeString},
	CanonicalTeam:           {Aliases: []string{"sales_team", "team", "Team"}, Type: FieldTypeString},
	CanonicalProduct:        {Aliases: []string{"product_type", "product", "program", "Product"}, Type: FieldTypeString},
	CanonicalServiceTier:    {Aliases: []string{"service_tier", "tier", "server", "serviceType"}, Type: FieldTypeString},
	CanonicalPaymentMethod:  {Aliases: []string{"Payment", "payment_method", "paymentMethod", "payment"}, Type: FieldTypeString},
	CanonicalInvoiceLink:    {Aliases: []string{"invoice_link", "invoiceLink"}, Type: FieldTypeString},
	CanonicalAmount:         {Aliases: []string{"amount_paid", "amount", "Amount"}, Type: FieldTypeNumber},
	CanonicalCommission:     {Aliases: []string{"commission", "Commission"}, Type: FieldTypeNumber},
	CanonicalDurationMonths: {Aliases: []string{"duration_months", "duration", "Duration"}, Type: FieldTypeNumber},
	CanonicalSignupDate:     {Aliases: []string{"signup_date", "startDate", "date", "createdAt"}, Type: FieldTypeDate},
	CanonicalEndDate:        {Aliases: []string{"end_date", "end_Date", "endDate"}, Type: FieldTypeDate},
	CanonicalDataMonth:      {Aliases: []string{"data_month", "month", "Month"}, Type: FieldTypeString},
	CanonicalDataYear:       {Aliases: []string{"data_year", "year", "Year"}, Type: FieldTypeString},
	CanonicalIsLongTerm:     {Aliases: []string{"is_long_term", "isLongTerm", "long_term"}, Type: FieldTypeBool},
}

// longTermMonths é a duração mínima para um contrato ser considerado de longo prazo
const longTermMonths = 12
