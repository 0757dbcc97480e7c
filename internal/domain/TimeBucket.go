package domain

import "time"

// Granularity define o tamanho do período de uma série temporal
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// IsValid indica se a granularidade é suportada
func (g Granularity) IsValid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

// TimeBucket agrega os registros de um período do calendário
type TimeBucket struct {
	Period           string    `json:"period"`
	Amount           float64   `json:"amount"`
	Count            int       `json:"count"`
	CumulativeAmount float64   `json:"cumulative_amount"`
	SortDate         time.Time `json:"sort_date"`
}

// AverageDealSize retorna amount/count, ou 0 quando não há registros
func (b TimeBucket) AverageDealSize() float64 {
	if b.Count == 0 {
		return 0
	}
	return b.Amount / float64(b.Count)
}

// MetricValue retorna o valor do bucket para a métrica informada
func (b TimeBucket) MetricValue(metric Metric) float64 {
	switch metric {
	case MetricCount:
		return float64(b.Count)
	case MetricAverage:
		return b.AverageDealSize()
	default:
		return b.Amount
	}
}

// TimeSeries é o resultado do construtor de séries temporais
type TimeSeries struct {
	Granularity Granularity  `json:"granularity"`
	Buckets     []TimeBucket `json:"buckets"`
	Diagnostics Diagnostics  `json:"diagnostics"`
}
