package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	dayLabelLayout   = "02/01/2006"
	monthLabelLayout = "Jan 06"
)

// PeriodLabel retorna o rótulo do período que contém a data:
// dia e semana em DD/MM/YYYY (semana = domingo inicial), mês como "Jan 24".
func PeriodLabel(date time.Time, granularity domain.Granularity) string {
	switch granularity {
	case domain.GranularityDay:
		return utils.StartOfDay(date).Format(dayLabelLayout)
	case domain.GranularityWeek:
		return utils.StartOfWeek(date).Format(dayLabelLayout)
	default:
		return date.Format(monthLabelLayout)
	}
}

// ParsePeriodLabel faz o caminho inverso de PeriodLabel
func ParsePeriodLabel(label string) (time.Time, domain.Granularity, bool) {
	if date, err := time.Parse(monthLabelLayout, label); err == nil {
		return date, domain.GranularityMonth, true
	}
	if date, err := time.Parse(dayLabelLayout, label); err == nil {
		return date, domain.GranularityDay, true
	}
	return time.Time{}, "", false
}

func periodKeyFunc(granularity domain.Granularity) KeyFunc {
	return func(r domain.SalesRecord) string {
		date, err := utils.ParseFlexibleDate(r.SignupDate)
		if err != nil {
			return ""
		}
		return PeriodLabel(date, granularity)
	}
}

type timeAccumulator struct {
	label     string
	amount    decimal.Decimal
	count     int
	firstSeen time.Time
}

// BuildTimeSeries agrupa os registros por período, ordena cronologicamente pela
// primeira data encontrada de cada período e calcula o acumulado. Registros com
// data ilegível ficam fora apenas da série e são contados no diagnóstico.
func BuildTimeSeries(records []domain.SalesRecord, granularity domain.Granularity) domain.TimeSeries {
	if !granularity.IsValid() {
		granularity = domain.GranularityMonth
	}

	series := domain.TimeSeries{Granularity: granularity}
	accumulators := make(map[string]*timeAccumulator)
	skipped := 0

	for _, record := range records {
		date, err := utils.ParseFlexibleDate(record.SignupDate)
		if err != nil {
			skipped++
			continue
		}

		label := PeriodLabel(date, granularity)
		acc, exists := accumulators[label]
		if !exists {
			acc = &timeAccumulator{label: label, amount: decimal.Zero, firstSeen: date}
			accumulators[label] = acc
		}

		acc.amount = acc.amount.Add(toDecimal(record.AmountPaid))
		acc.count++
	}

	ordered := make([]*timeAccumulator, 0, len(accumulators))
	for _, acc := range accumulators {
		ordered = append(ordered, acc)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].firstSeen.Equal(ordered[j].firstSeen) {
			return ordered[i].firstSeen.Before(ordered[j].firstSeen)
		}
		return ordered[i].label < ordered[j].label
	})

	buckets := make([]domain.TimeBucket, 0, len(ordered))
	cumulative := decimal.Zero
	for _, acc := range ordered {
		cumulative = cumulative.Add(acc.amount)
		buckets = append(buckets, domain.TimeBucket{
			Period:           acc.label,
			Amount:           acc.amount.InexactFloat64(),
			Count:            acc.count,
			CumulativeAmount: cumulative.InexactFloat64(),
			SortDate:         acc.firstSeen,
		})
	}

	series.Buckets = buckets
	series.Diagnostics.Add(domain.WarningUnparseableDate, skipped, "registros ignorados na série temporal (%s) por data ilegível", granularity)

	return series
}

// HistoryFromBuckets converte uma série temporal na entrada do Forecaster
func HistoryFromBuckets(buckets []domain.TimeBucket) []domain.HistoricalPoint {
	history := make([]domain.HistoricalPoint, 0, len(buckets))
	for _, bucket := range buckets {
		history = append(history, domain.HistoricalPoint{
			Period: bucket.Period,
			Amount: bucket.Amount,
			Count:  bucket.Count,
		})
	}
	return history
}
