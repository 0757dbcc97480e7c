package analytics

import (
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Rank ordena os buckets pela métrica em ordem decrescente e aplica o top-N
// quando topN > 0. Empates são resolvidos pela chave em ordem crescente.
func Rank(buckets map[string]*domain.AggregateBucket, metric domain.Metric, topN int) []*domain.AggregateBucket {
	list := make([]*domain.AggregateBucket, 0, len(buckets))
	for _, bucket := range buckets {
		list = append(list, bucket)
	}
	return RankSlice(list, metric, topN)
}

// RankSlice é a versão de Rank para buckets já em lista. A entrada não é alterada.
func RankSlice(buckets []*domain.AggregateBucket, metric domain.Metric, topN int) []*domain.AggregateBucket {
	ranked := make([]*domain.AggregateBucket, len(buckets))
	copy(ranked, buckets)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := ranked[i].MetricValue(metric), ranked[j].MetricValue(metric)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Key < ranked[j].Key
	})

	return truncate(ranked, topN)
}

// RankTimeBuckets ordena períodos pela métrica (ex.: melhores dias de venda)
func RankTimeBuckets(buckets []domain.TimeBucket, metric domain.Metric, topN int) []domain.TimeBucket {
	ranked := make([]domain.TimeBucket, len(buckets))
	copy(ranked, buckets)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := ranked[i].MetricValue(metric), ranked[j].MetricValue(metric)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Period < ranked[j].Period
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// AssignPositions numera os buckets já ordenados a partir de 1 e compara com as
// posições de um ranking anterior. PositionChange positivo = subiu.
func AssignPositions(current []*domain.AggregateBucket, previous []*domain.AggregateBucket) {
	previousPositions := make(map[string]int, len(previous))
	for i, bucket := range previous {
		position := bucket.Position
		if position == 0 {
			position = i + 1
		}
		previousPositions[bucket.Key] = position
	}

	for i, bucket := range current {
		bucket.Position = i + 1

		previousPosition, exists := previousPositions[bucket.Key]
		if exists {
			bucket.PositionChange = previousPosition - bucket.Position
			bucket.PreviousPosition = previousPosition
			continue
		}

		bucket.PositionChange = 0
		bucket.PreviousPosition = 0
	}
}

// TopKeys retorna as chaves dos N maiores buckets pela soma
func TopKeys(buckets map[string]*domain.AggregateBucket, topN int) []string {
	ranked := Rank(buckets, domain.MetricSum, topN)
	keys := make([]string, 0, len(ranked))
	for _, bucket := range ranked {
		keys = append(keys, bucket.Key)
	}
	return keys
}

func truncate(buckets []*domain.AggregateBucket, topN int) []*domain.AggregateBucket {
	if topN > 0 && len(buckets) > topN {
		return buckets[:topN]
	}
	return buckets
}
