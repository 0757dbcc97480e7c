package analytics

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// KeyFunc extrai a chave de agrupamento de um registro
type KeyFunc func(domain.SalesRecord) string

// ValueFunc extrai o valor acumulado de um registro
type ValueFunc func(domain.SalesRecord) float64

// AmountValue acumula o valor pago
func AmountValue(r domain.SalesRecord) float64 {
	return r.AmountPaid
}

// CommissionValue acumula a comissão
func CommissionValue(r domain.SalesRecord) float64 {
	return r.Commission
}

// DurationValue acumula a duração em meses
func DurationValue(r domain.SalesRecord) float64 {
	return r.DurationMonths
}

var dimensionKeys = map[domain.Dimension]KeyFunc{
	domain.DimensionAgent:    func(r domain.SalesRecord) string { return r.Agent },
	domain.DimensionCloser:   func(r domain.SalesRecord) string { return r.Closer },
	domain.DimensionTeam:     func(r domain.SalesRecord) string { return r.Team },
	domain.DimensionCountry:  func(r domain.SalesRecord) string { return r.Country },
	domain.DimensionProduct:  func(r domain.SalesRecord) string { return r.Product },
	domain.DimensionTier:     func(r domain.SalesRecord) string { return r.ServiceTier },
	domain.DimensionPayment:  func(r domain.SalesRecord) string { return r.PaymentMethod },
	domain.DimensionCustomer: func(r domain.SalesRecord) string { return r.CustomerName },
	domain.DimensionMonth:    func(r domain.SalesRecord) string { return r.DataMonth },
	domain.DimensionDay:      periodKeyFunc(domain.GranularityDay),
	domain.DimensionWeek:     periodKeyFunc(domain.GranularityWeek),
	domain.DimensionCalendar: periodKeyFunc(domain.GranularityMonth),
}

// KeyFor retorna o extrator de chave de uma dimensão conhecida
func KeyFor(dimension domain.Dimension) (KeyFunc, bool) {
	key, ok := dimensionKeys[dimension]
	return key, ok
}

// IsSupportedDimension indica se a dimensão possui extrator de chave
func IsSupportedDimension(dimension domain.Dimension) bool {
	_, ok := dimensionKeys[dimension]
	return ok
}

// Aggregate agrupa os registros pela chave extraída, somando o valor e contando
// registros. Registros com chave em branco ficam fora desta agregação apenas.
func Aggregate(records []domain.SalesRecord, key KeyFunc, value ValueFunc) map[string]*domain.AggregateBucket {
	sums := make(map[string]decimal.Decimal)
	buckets := make(map[string]*domain.AggregateBucket)

	for _, record := range records {
		k := strings.TrimSpace(key(record))
		if k == "" {
			continue
		}

		bucket, exists := buckets[k]
		if !exists {
			bucket = &domain.AggregateBucket{Key: k}
			buckets[k] = bucket
			sums[k] = decimal.Zero
		}

		sums[k] = sums[k].Add(toDecimal(value(record)))
		bucket.Count++
	}

	for k, bucket := range buckets {
		bucket.Sum = sums[k].InexactFloat64()
	}

	return buckets
}

// GroupBy agrega o valor pago pela dimensão informada. Dimensões desconhecidas
// resultam em um mapa vazio.
func GroupBy(records []domain.SalesRecord, dimension domain.Dimension) map[string]*domain.AggregateBucket {
	key, ok := KeyFor(dimension)
	if !ok {
		return map[string]*domain.AggregateBucket{}
	}
	return Aggregate(records, key, AmountValue)
}

// TotalAmount soma o valor pago de todos os registros
func TotalAmount(records []domain.SalesRecord) float64 {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(toDecimal(record.AmountPaid))
	}
	return total.InexactFloat64()
}

// WithPercentages preenche a participação de cada bucket no total informado
func WithPercentages(buckets []*domain.AggregateBucket, total float64) []*domain.AggregateBucket {
	for _, bucket := range buckets {
		bucket.PercentageOfTotal = utils.SafeDivide(bucket.Sum, total) * 100
	}
	return buckets
}

// Summarize calcula os indicadores gerais exibidos nos cards do painel
func Summarize(records []domain.SalesRecord) domain.Summary {
	summary := domain.Summary{
		TotalAmount: TotalAmount(records),
		TotalDeals:  len(records),
	}

	agents := make(map[string]struct{})
	closers := make(map[string]struct{})
	countries := make(map[string]struct{})
	var totalDuration float64

	for _, record := range records {
		totalDuration += record.DurationMonths
		if record.IsLongTerm {
			summary.LongTermDeals++
		}
		addDistinct(agents, record.Agent)
		addDistinct(closers, record.Closer)
		addDistinct(countries, record.Country)
	}

	summary.AverageDeal = utils.SafeDivide(summary.TotalAmount, float64(summary.TotalDeals))
	summary.AverageDuration = utils.SafeDivide(totalDuration, float64(summary.TotalDeals))
	summary.UniqueAgents = len(agents)
	summary.UniqueClosers = len(closers)
	summary.UniqueCountries = len(countries)

	return summary
}

// ToRankingItems converte buckets no contrato de saída da camada de apresentação
func ToRankingItems(buckets []*domain.AggregateBucket) []domain.RankingItem {
	items := make([]domain.RankingItem, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, domain.RankingItem{
			Name:             bucket.Key,
			Amount:           utils.RoundWithTwoDecimalPlace(bucket.Sum),
			Deals:            bucket.Count,
			AverageDeal:      utils.RoundWithTwoDecimalPlace(bucket.Average()),
			Percentage:       utils.RoundWithTwoDecimalPlace(bucket.PercentageOfTotal),
			Position:         bucket.Position,
			PreviousPosition: bucket.PreviousPosition,
			PositionChange:   bucket.PositionChange,
		})
	}
	return items
}

func addDistinct(set map[string]struct{}, value string) {
	if v := strings.TrimSpace(value); v != "" {
		set[v] = struct{}{}
	}
}

// toDecimal descarta NaN e infinitos, que fariam decimal.NewFromFloat entrar em pânico
func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
