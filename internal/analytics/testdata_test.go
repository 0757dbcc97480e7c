package analytics

import "github.com/vfg2006/sales-dashboard-api/internal/domain"

// scenarioRecords é o conjunto básico usado nos testes de agregação e filtro
func scenarioRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		{ID: "1", CustomerName: "Maria Silva", Agent: "A", Product: "Gold", AmountPaid: 100, SignupDate: "01/02/2024"},
		{ID: "2", CustomerName: "João Souza", Agent: "B", Product: "Silver", AmountPaid: 300, SignupDate: "15/02/2024"},
		{ID: "3", CustomerName: "Ana Lima", Agent: "A", Product: "Gold", AmountPaid: 50, SignupDate: "not-a-date"},
	}
}
