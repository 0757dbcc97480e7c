package domain

// TrendDirection indica a direção prevista da receita
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendFlat       TrendDirection = "flat"
)

// HistoricalPoint é um período histórico usado como entrada da previsão
type HistoricalPoint struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// ForecastPoint é um período futuro previsto. Imutável depois de criado.
type ForecastPoint struct {
	PeriodLabel           string         `json:"period"`
	PredictedAmount       float64        `json:"predictedAmount"`
	PredictedCount        int            `json:"predictedDeals"`
	AverageDealSize       float64        `json:"averageDealSize"`
	Confidence            float64        `json:"confidence"`
	SeasonalFactorApplied float64        `json:"seasonalFactor"`
	TrendDirection        TrendDirection `json:"trendDirection"`
}

// ForecastSummary consolida o horizonte previsto para os cards do painel
type ForecastSummary struct {
	TotalPredictedAmount float64 `json:"totalPredictedAmount"`
	TotalPredictedDeals  int     `json:"totalPredictedDeals"`
	AverageConfidence    float64 `json:"averageConfidence"`
	// GrowthPercent compara o último período previsto com o último período real
	GrowthPercent float64 `json:"growthPercent"`
}

// MixShare é a fatia de um valor da dimensão aplicada a cada período previsto
type MixShare struct {
	Name             string    `json:"name"`
	Share            float64   `json:"share"`
	PredictedAmounts []float64 `json:"predictedAmounts"`
}

// MixProjection distribui a receita prevista pela participação observada no último mês
type MixProjection struct {
	Dimension  Dimension  `json:"dimension"`
	BasePeriod string     `json:"basePeriod"`
	Items      []MixShare `json:"items"`
}

// ForecastResponse reúne histórico, previsão e avisos de uma execução
type ForecastResponse struct {
	History      []HistoricalPoint `json:"history"`
	Forecast     []ForecastPoint   `json:"forecast"`
	Summary      ForecastSummary   `json:"summary"`
	Mix          *MixProjection    `json:"mix,omitempty"`
	RevenueSlope float64           `json:"revenue_slope"`
	DealsSlope   float64           `json:"deals_slope"`
	Diagnostics  Diagnostics       `json:"diagnostics"`
}
