// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// SalesRecord representa uma venda já normalizada. Todos os campos possuem
// valor padrão determinístico (0, "" ou false).
type SalesRecord struct {
	ID             string  `json:"id"`
	CustomerName   string  `json:"customer_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Country        string  `json:"country"`
	Agent          string  `json:"agent"`
	Closer         string  `json:"closer"`
	Team           string  `json:"team"`
	Product        string  `json:"product"`
	ServiceTier    string  `json:"service_tier"`
	PaymentMethod  string  `json:"payment_method"`
	InvoiceLink    string  `json:"invoice_link"`
	AmountPaid     float64 `json:"amount_paid"`
	Commission     float64 `json:"commission"`
	DurationMonths float64 `json:"duration_months"`
	SignupDate     string  `json:"signup_date"` // formato desconhecido até o parse
	EndDate        string  `json:"end_date"`
	DataMonth      string  `json:"data_month"`
	DataYear       string  `json:"data_year"`
	IsLongTerm     bool    `json:"is_long_term"`
}

// Snapshot é o conjunto imutável de registros analisado em um dado momento
type Snapshot struct {
	Version  uint64        `json:"version"`
	Records  []SalesRecord `json:"records"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// Len retorna a quantidade de registros do snapshot
func (s Snapshot) Len() int {
	return len(s.Records)
}
