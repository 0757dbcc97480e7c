package domain

// Dimension identifica a chave de agrupamento de uma agregação
type Dimension string

const (
	DimensionAgent    Dimension = "agent"
	DimensionCloser   Dimension = "closer"
	DimensionTeam     Dimension = "team"
	DimensionCountry  Dimension = "country"
	DimensionProduct  Dimension = "product"
	DimensionTier     Dimension = "tier"
	DimensionPayment  Dimension = "payment"
	DimensionCustomer Dimension = "customer"
	DimensionMonth    Dimension = "month"
	DimensionDay      Dimension = "day"
	DimensionWeek     Dimension = "week"
	DimensionCalendar Dimension = "calendar_month"
)

// Metric identifica a métrica usada para ordenar buckets
type Metric string

const (
	MetricSum     Metric = "sum"
	MetricCount   Metric = "count"
	MetricAverage Metric = "average"
)

// AggregateBucket acumula soma e contagem de um valor de agrupamento
type AggregateBucket struct {
	Key               string  `json:"key"`
	Sum               float64 `json:"sum"`
	Count             int     `json:"count"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
	Position          int     `json:"position,omitempty"`
	PreviousPosition  int     `json:"previous_position,omitempty"`
	PositionChange    int     `json:"position_change,omitempty"` // positivo = subiu, negativo = desceu
}

// Average retorna sum/count, ou 0 quando não há registros
func (b *AggregateBucket) Average() float64 {
	if b == nil || b.Count == 0 {
		return 0
	}
	return b.Sum / float64(b.Count)
}

// MetricValue retorna o valor do bucket para a métrica informada
func (b *AggregateBucket) MetricValue(metric Metric) float64 {
	switch metric {
	case MetricCount:
		return float64(b.Count)
	case MetricAverage:
		return b.Average()
	default:
		return b.Sum
	}
}

// RankingItem é o contrato de saída para rankings e agregações
type RankingItem struct {
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Deals            int     `json:"deals"`
	AverageDeal      float64 `json:"averageDeal"`
	Percentage       float64 `json:"percentage,omitempty"`
	Position         int     `json:"position,omitempty"`
	PreviousPosition int     `json:"previousPosition,omitempty"`
	PositionChange   int     `json:"positionChange,omitempty"`
}

// Summary reúne os indicadores gerais de um subconjunto de registros
type Summary struct {
	TotalAmount     float64 `json:"total_amount"`
	TotalDeals      int     `json:"total_deals"`
	AverageDeal     float64 `json:"average_deal"`
	AverageDuration float64 `json:"average_duration_months"`
	LongTermDeals   int     `json:"long_term_deals"`
	UniqueAgents    int     `json:"unique_agents"`
	UniqueClosers   int     `json:"unique_closers"`
	UniqueCountries int     `json:"unique_countries"`
}
