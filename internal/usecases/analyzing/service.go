package analyzing

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	DefaultRecordsLimit = 100
	MaxRecordsLimit     = 1000
)

// RecordSelector entrega os registros filtrados do snapshot atual
type RecordSelector interface {
	Select(filters domain.FilterConfig) ([]domain.SalesRecord, uint64)
}

type AnalysisService interface {
	RecordSelector
	Overview(filters domain.FilterConfig) (*domain.OverviewResponse, error)
	Aggregate(dimension domain.Dimension, metric domain.Metric, topN int, filters domain.FilterConfig) (*domain.AggregateResponse, error)
	TimeSeries(granularity domain.Granularity, filters domain.FilterConfig) (*domain.TimeSeries, error)
	BestPeriods(granularity domain.Granularity, metric domain.Metric, topN int, filters domain.FilterConfig) (*domain.BestPeriodsResponse, error)
	FilterOptions() (domain.FilterOptions, error)
	Records(filters domain.FilterConfig, limit, offset int) (*domain.RecordsResponse, error)
	AddRecords(rows []analytics.Row) (*domain.AddRecordsResponse, error)
}

type Service struct {
	store       store.Store
	cache       *ResultCache
	topProducts int

	filterMutex   sync.Mutex
	filter        *analytics.Filter
	filterVersion uint64
}

func NewService(snapshotStore store.Store, cache *ResultCache, cfg *config.Config) *Service {
	return &Service{
		store:       snapshotStore,
		cache:       cache,
		topProducts: cfg.Analytics.TopProducts,
	}
}

// currentFilter reaproveita o Filter enquanto a versão do snapshot não muda
func (s *Service) currentFilter() (*analytics.Filter, domain.Snapshot) {
	snapshot := s.store.GetAll()

	s.filterMutex.Lock()
	defer s.filterMutex.Unlock()

	if s.filter == nil || s.filterVersion != snapshot.Version {
		s.filter = analytics.NewFilter(snapshot.Records, s.topProducts)
		s.filterVersion = snapshot.Version
	}

	return s.filter, snapshot
}

func (s *Service) Select(filters domain.FilterConfig) ([]domain.SalesRecord, uint64) {
	filter, snapshot := s.currentFilter()
	return filter.Apply(filters), snapshot.Version
}

func (s *Service) Overview(filters domain.FilterConfig) (*domain.OverviewResponse, error) {
	filter, snapshot := s.currentFilter()
	active := filters.Active()

	return Memoize(s.cache, "overview", snapshot.Version, active, func() (*domain.OverviewResponse, error) {
		records := filter.Apply(active)

		response := &domain.OverviewResponse{
			SnapshotVersion: snapshot.Version,
			LoadedAt:        snapshot.LoadedAt,
			Summary:         analytics.Summarize(records),
			TopProducts:     filter.TopProducts(),
		}
		response.Summary.TotalAmount = utils.RoundWithTwoDecimalPlace(response.Summary.TotalAmount)
		response.Summary.AverageDeal = utils.RoundWithTwoDecimalPlace(response.Summary.AverageDeal)
		response.Summary.AverageDuration = utils.RoundWithTwoDecimalPlace(response.Summary.AverageDuration)

		series := analytics.BuildTimeSeries(records, domain.GranularityMonth)
		response.Diagnostics.Merge(series.Diagnostics)

		return response, nil
	})
}

func (s *Service) Aggregate(dimension domain.Dimension, metric domain.Metric, topN int, filters domain.FilterConfig) (*domain.AggregateResponse, error) {
	if err := ValidateDimension(dimension); err != nil {
		return nil, err
	}
	metric, err := ValidateMetric(metric)
	if err != nil {
		return nil, err
	}

	filter, snapshot := s.currentFilter()
	active := filters.Active()
	params := map[string]any{"dimension": dimension, "metric": metric, "top": topN, "filters": active}

	return Memoize(s.cache, "aggregate", snapshot.Version, params, func() (*domain.AggregateResponse, error) {
		records := filter.Apply(active)
		total := analytics.TotalAmount(records)

		ranked := analytics.Rank(analytics.GroupBy(records, dimension), metric, topN)
		analytics.WithPercentages(ranked, total)

		response := &domain.AggregateResponse{
			Dimension: dimension,
			Metric:    metric,
			Total:     utils.RoundWithTwoDecimalPlace(total),
			Items:     analytics.ToRankingItems(ranked),
		}
		if isTimeDimension(dimension) {
			response.Diagnostics.Merge(analytics.BuildTimeSeries(records, domain.GranularityDay).Diagnostics)
		}

		return response, nil
	})
}

func (s *Service) TimeSeries(granularity domain.Granularity, filters domain.FilterConfig) (*domain.TimeSeries, error) {
	if !granularity.IsValid() {
		return nil, NewAnalysisError(ErrInvalidGranularity, apiErrors.ErrInvalidRequest, fmt.Sprintf("granularidade %q não suportada", granularity))
	}

	filter, snapshot := s.currentFilter()
	active := filters.Active()
	params := map[string]any{"granularity": granularity, "filters": active}

	return Memoize(s.cache, "timeseries", snapshot.Version, params, func() (*domain.TimeSeries, error) {
		series := analytics.BuildTimeSeries(filter.Apply(active), granularity)
		return &series, nil
	})
}

func (s *Service) BestPeriods(granularity domain.Granularity, metric domain.Metric, topN int, filters domain.FilterConfig) (*domain.BestPeriodsResponse, error) {
	series, err := s.TimeSeries(granularity, filters)
	if err != nil {
		return nil, err
	}
	metric, err = ValidateMetric(metric)
	if err != nil {
		return nil, err
	}

	return &domain.BestPeriodsResponse{
		Granularity: series.Granularity,
		Metric:      metric,
		Periods:     analytics.RankTimeBuckets(series.Buckets, metric, topN),
		Diagnostics: series.Diagnostics,
	}, nil
}

func (s *Service) FilterOptions() (domain.FilterOptions, error) {
	filter, snapshot := s.currentFilter()

	return Memoize(s.cache, "filter_options", snapshot.Version, nil, func() (domain.FilterOptions, error) {
		return filter.Options(), nil
	})
}

func (s *Service) Records(filters domain.FilterConfig, limit, offset int) (*domain.RecordsResponse, error) {
	if limit < 0 || offset < 0 {
		return nil, NewAnalysisError(ErrInvalidPagination, apiErrors.ErrInvalidRequest, "limit e offset não podem ser negativos")
	}
	if limit == 0 {
		limit = DefaultRecordsLimit
	}
	if limit > MaxRecordsLimit {
		limit = MaxRecordsLimit
	}

	records, _ := s.Select(filters)

	start := min(offset, len(records))
	end := min(start+limit, len(records))

	return &domain.RecordsResponse{
		Total:   len(records),
		Limit:   limit,
		Offset:  offset,
		Records: records[start:end],
	}, nil
}

func (s *Service) AddRecords(rows []analytics.Row) (*domain.AddRecordsResponse, error) {
	if len(rows) == 0 {
		return nil, NewAnalysisError(ErrEmptyRecords, apiErrors.ErrMissingRequiredData, "nenhum registro informado")
	}

	records, diagnostics := analytics.NormalizeRows(rows)

	snapshot, err := s.store.Add(records...)
	if err != nil {
		logrus.WithError(err).Error("Erro ao adicionar registros ao snapshot")
		return nil, NewAnalysisError(ErrAddRecords, apiErrors.ErrInternalServer, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"added":   len(records),
		"version": snapshot.Version,
	}).Info("Registros adicionados manualmente ao snapshot")

	return &domain.AddRecordsResponse{
		Added:           len(records),
		SnapshotVersion: snapshot.Version,
		Diagnostics:     diagnostics,
	}, nil
}

// ValidateDimension rejeita dimensões sem extrator de chave
func ValidateDimension(dimension domain.Dimension) error {
	if !analytics.IsSupportedDimension(dimension) {
		return NewAnalysisError(ErrUnsupportedDimension, apiErrors.ErrInvalidRequest, fmt.Sprintf("dimensão %q não suportada", dimension))
	}
	return nil
}

// ValidateMetric aplica a métrica padrão (soma) e rejeita métricas desconhecidas
func ValidateMetric(metric domain.Metric) (domain.Metric, error) {
	switch metric {
	case "":
		return domain.MetricSum, nil
	case domain.MetricSum, domain.MetricCount, domain.MetricAverage:
		return metric, nil
	default:
		return "", NewAnalysisError(ErrInvalidMetric, apiErrors.ErrInvalidRequest, fmt.Sprintf("métrica %q não suportada", metric))
	}
}

func isTimeDimension(dimension domain.Dimension) bool {
	return dimension == domain.DimensionDay || dimension == domain.DimensionWeek || dimension == domain.DimensionCalendar
}
