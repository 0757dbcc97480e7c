package domain

import "time"

// OverviewResponse alimenta os cards de resumo do painel
type OverviewResponse struct {
	SnapshotVersion uint64      `json:"snapshot_version"`
	LoadedAt        time.Time   `json:"loaded_at"`
	Summary         Summary     `json:"summary"`
	TopProducts     []string    `json:"top_products"`
	Diagnostics     Diagnostics `json:"diagnostics"`
}

// AggregateResponse é o resultado de uma agregação por dimensão
type AggregateResponse struct {
	Dimension   Dimension     `json:"dimension"`
	Metric      Metric        `json:"metric"`
	Total       float64       `json:"total"`
	Items       []RankingItem `json:"items"`
	Diagnostics Diagnostics   `json:"diagnostics"`
}

// LeaderboardResponse é o ranking de uma dimensão com posições
type LeaderboardResponse struct {
	Dimension       Dimension     `json:"dimension"`
	Metric          Metric        `json:"metric"`
	SnapshotVersion uint64        `json:"snapshot_version"`
	Items           []RankingItem `json:"items"`
}

// CompetitionResponse compara o ranking de um mês com o mês anterior
type CompetitionResponse struct {
	Dimension     Dimension     `json:"dimension"`
	Month         string        `json:"month"`
	PreviousMonth string        `json:"previous_month"`
	Items         []RankingItem `json:"items"`
}

// BestPeriodsResponse lista os períodos de melhor desempenho
type BestPeriodsResponse struct {
	Granularity Granularity  `json:"granularity"`
	Metric      Metric       `json:"metric"`
	Periods     []TimeBucket `json:"periods"`
	Diagnostics Diagnostics  `json:"diagnostics"`
}

// RecordsResponse é uma página dos registros filtrados
type RecordsResponse struct {
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	Records []SalesRecord `json:"records"`
}

// AddRecordsResponse é o resultado da inclusão manual de registros
type AddRecordsResponse struct {
	Added           int         `json:"added"`
	SnapshotVersion uint64      `json:"snapshot_version"`
	Diagnostics     Diagnostics `json:"diagnostics"`
}

// RefreshResult resume uma recarga do snapshot a partir da origem
type RefreshResult struct {
	Source      string        `json:"source"`
	Version     uint64        `json:"version"`
	Rows        int           `json:"rows"`
	Duration    time.Duration `json:"duration"`
	Diagnostics Diagnostics   `json:"diagnostics"`
}
