package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	MinConfidence = 0.5
	MaxConfidence = 0.95

	DefaultWindowSize     = 6
	DefaultBaseConfidence = 0.95
	DefaultDecayRate      = 0.05
	DefaultMinHistory     = 2
	DefaultHorizon        = 6
)

// ForecastParams controla o Forecaster
type ForecastParams struct {
	Horizon        int
	WindowSize     int
	BaseConfidence float64
	DecayRate      float64
	// MinHistory abaixo do qual a tendência é considerada nula
	MinHistory  int
	Seasonality SeasonalModel
}

// DefaultForecastParams retorna os parâmetros padrão do painel de previsão
func DefaultForecastParams() ForecastParams {
	return ForecastParams{
		Horizon:        DefaultHorizon,
		WindowSize:     DefaultWindowSize,
		BaseConfidence: DefaultBaseConfidence,
		DecayRate:      DefaultDecayRate,
		MinHistory:     DefaultMinHistory,
		Seasonality:    DefaultSeasonality(),
	}
}

func (p ForecastParams) normalized() ForecastParams {
	if p.WindowSize <= 0 {
		p.WindowSize = DefaultWindowSize
	}
	if p.MinHistory < 2 {
		p.MinHistory = DefaultMinHistory
	}
	if p.DecayRate < 0 || math.IsNaN(p.DecayRate) {
		p.DecayRate = 0
	}
	if math.IsNaN(p.BaseConfidence) {
		p.BaseConfidence = DefaultBaseConfidence
	}
	if p.Seasonality == nil {
		p.Seasonality = DefaultSeasonality()
	}
	return p
}

// Forecast extrapola Horizon períodos a partir da série histórica cronológica.
//
// A tendência usa a janela dos últimos WindowSize pontos:
// (último − primeiro) / primeiro / tamanho da janela, calculada de forma
// independente para receita e negócios. Com menos de MinHistory pontos a
// tendência é zero e a previsão repete o último período ajustado pela
// sazonalidade. Nunca falha: divisões por zero resultam em 0.
func Forecast(history []domain.HistoricalPoint, params ForecastParams) domain.ForecastResponse {
	params = params.normalized()

	response := domain.ForecastResponse{
		History:  history,
		Forecast: []domain.ForecastPoint{},
	}

	if len(history) == 0 {
		response.Diagnostics.Add(domain.WarningInsufficientHistory, 1, "série histórica vazia: nenhuma previsão gerada")
		return response
	}
	if params.Horizon <= 0 {
		return response
	}

	window := history[max(0, len(history)-params.WindowSize):]
	last := history[len(history)-1]

	var revenueSlope, dealsSlope float64
	if len(history) < params.MinHistory {
		response.Diagnostics.Add(
			domain.WarningInsufficientHistory, 1,
			"histórico com %d ponto(s), mínimo %d: tendência considerada nula", len(history), params.MinHistory,
		)
	} else {
		amounts := make([]float64, len(window))
		counts := make([]float64, len(window))
		for i, point := range window {
			amounts[i] = point.Amount
			counts[i] = float64(point.Count)
		}

		revenueSlope = TrendSlope(amounts)
		dealsSlope = TrendSlope(counts)

		if window[0].Amount == 0 {
			response.Diagnostics.Add(domain.WarningZeroBaseline, 1, "receita do primeiro ponto da janela é zero: tendência de receita considerada nula")
		}
		if window[0].Count == 0 {
			response.Diagnostics.Add(domain.WarningZeroBaseline, 1, "negócios do primeiro ponto da janela são zero: tendência de negócios considerada nula")
		}
	}

	response.RevenueSlope = revenueSlope
	response.DealsSlope = dealsSlope

	points := make([]domain.ForecastPoint, 0, params.Horizon)
	for i := 1; i <= params.Horizon; i++ {
		seasonal := params.Seasonality.Factor(i)

		amount := math.Max(0, last.Amount*(1+revenueSlope*float64(i))*seasonal)
		count := math.Max(0, math.Round(float64(last.Count)*(1+dealsSlope*float64(i))*seasonal))

		points = append(points, domain.ForecastPoint{
			PeriodLabel:           nextPeriodLabel(history, i),
			PredictedAmount:       utils.RoundWithTwoDecimalPlace(amount),
			PredictedCount:        int(count),
			AverageDealSize:       utils.RoundWithTwoDecimalPlace(utils.SafeDivide(amount, count)),
			Confidence:            Confidence(i, params.BaseConfidence, params.DecayRate),
			SeasonalFactorApplied: seasonal,
		})
	}

	direction := trendDirection(points[len(points)-1].PredictedAmount, utils.RoundWithTwoDecimalPlace(last.Amount))
	for i := range points {
		points[i].TrendDirection = direction
	}

	response.Forecast = points
	response.Summary = SummarizeForecast(points, last)
	return response
}

// SummarizeForecast soma o horizonte previsto e mede o crescimento do último
// período previsto sobre o último período real
func SummarizeForecast(points []domain.ForecastPoint, last domain.HistoricalPoint) domain.ForecastSummary {
	if len(points) == 0 {
		return domain.ForecastSummary{}
	}

	var amount, confidence float64
	deals := 0
	for _, point := range points {
		amount += point.PredictedAmount
		confidence += point.Confidence
		deals += point.PredictedCount
	}

	final := points[len(points)-1].PredictedAmount
	return domain.ForecastSummary{
		TotalPredictedAmount: utils.RoundWithTwoDecimalPlace(amount),
		TotalPredictedDeals:  deals,
		AverageConfidence:    utils.RoundWithTwoDecimalPlace(confidence / float64(len(points))),
		GrowthPercent:        utils.RoundWithTwoDecimalPlace(utils.SafeDivide(final-last.Amount, last.Amount) * 100),
	}
}

// ProjectMix aplica a participação de cada valor da dimensão nos registros do
// período base à receita prevista de cada ponto. Retorna nil quando a
// dimensão não é suportada ou o período base não tem receita.
func ProjectMix(records []domain.SalesRecord, dimension domain.Dimension, basePeriod string, points []domain.ForecastPoint) *domain.MixProjection {
	if !IsSupportedDimension(dimension) {
		return nil
	}

	total := TotalAmount(records)
	if total <= 0 {
		return nil
	}

	ranked := Rank(GroupBy(records, dimension), domain.MetricSum, 0)
	items := make([]domain.MixShare, 0, len(ranked))
	for _, bucket := range ranked {
		share := utils.SafeDivide(bucket.Sum, total)
		amounts := make([]float64, len(points))
		for i, point := range points {
			amounts[i] = utils.RoundWithTwoDecimalPlace(point.PredictedAmount * share)
		}
		items = append(items, domain.MixShare{
			Name:             bucket.Key,
			Share:            utils.RoundWithTwoDecimalPlace(share * 100),
			PredictedAmounts: amounts,
		})
	}

	return &domain.MixProjection{
		Dimension:  dimension,
		BasePeriod: basePeriod,
		Items:      items,
	}
}

// TrendSlope calcula a taxa de crescimento por período da janela.
// Retorna 0 com menos de dois valores ou quando o primeiro valor é zero.
func TrendSlope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	first, last := values[0], values[len(values)-1]
	return utils.SafeDivide(utils.SafeDivide(last-first, first), float64(len(values)))
}

// Confidence decai linearmente com o horizonte e fica limitada a [0.5, 0.95]
func Confidence(i int, base, decay float64) float64 {
	return utils.RoundWithTwoDecimalPlace(utils.Clamp(base-decay*float64(i), MinConfidence, MaxConfidence))
}

func trendDirection(finalAmount, lastAmount float64) domain.TrendDirection {
	switch {
	case finalAmount > lastAmount:
		return domain.TrendIncreasing
	case finalAmount < lastAmount:
		return domain.TrendDecreasing
	default:
		return domain.TrendFlat
	}
}

// nextPeriodLabel continua os rótulos do histórico: meses avançam mês a mês,
// dias/semanas avançam pelo intervalo entre os dois últimos rótulos.
func nextPeriodLabel(history []domain.HistoricalPoint, i int) string {
	last := history[len(history)-1].Period
	date, granularity, ok := ParsePeriodLabel(last)
	if !ok {
		return fmt.Sprintf("+%d", i)
	}

	if granularity == domain.GranularityMonth {
		return PeriodLabel(date.AddDate(0, i, 0), domain.GranularityMonth)
	}

	step := 24 * time.Hour
	if len(history) >= 2 {
		if previous, _, okPrev := ParsePeriodLabel(history[len(history)-2].Period); okPrev {
			if diff := date.Sub(previous); diff >= 24*time.Hour {
				step = diff
			}
		}
	}

	return PeriodLabel(date.Add(step*time.Duration(i)), domain.GranularityDay)
}
