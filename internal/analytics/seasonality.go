package analytics

import (
	"math"
	"strings"
)

const (
	SeasonalityNone       = "none"
	SeasonalitySinusoidal = "sinusoidal"
	SeasonalityQuarterly  = "quarterly"
)

// SeasonalModel fornece o fator multiplicativo do i-ésimo período previsto (i >= 1)
type SeasonalModel interface {
	Name() string
	Factor(i int) float64
}

// SinusoidalSeasonality aplica 1 + Amplitude·sin(2πi/Period).
// Com Amplitude 0.1 e Period 12 equivale a 1 + 0.1·sin(iπ/6).
type SinusoidalSeasonality struct {
	Amplitude float64
	Period    float64
}

func (s SinusoidalSeasonality) Name() string {
	return SeasonalitySinusoidal
}

func (s SinusoidalSeasonality) Factor(i int) float64 {
	if s.Period == 0 {
		return 1
	}
	return 1 + s.Amplitude*math.Sin(2*math.Pi*float64(i)/s.Period)
}

// QuarterlySeasonality usa a tabela fixa: três primeiros períodos 0.85,
// do quarto ao sexto 1.0, e 1.15 a partir do sétimo (pico).
type QuarterlySeasonality struct{}

func (QuarterlySeasonality) Name() string {
	return SeasonalityQuarterly
}

func (QuarterlySeasonality) Factor(i int) float64 {
	switch {
	case i <= 3:
		return 0.85
	case i <= 6:
		return 1.0
	default:
		return 1.15
	}
}

// NoSeasonality mantém fator 1 em todos os períodos
type NoSeasonality struct{}

func (NoSeasonality) Name() string {
	return SeasonalityNone
}

func (NoSeasonality) Factor(int) float64 {
	return 1
}

// DefaultSeasonality é o modelo senoidal de amplitude 0.1 e ciclo anual
func DefaultSeasonality() SeasonalModel {
	return SinusoidalSeasonality{Amplitude: 0.1, Period: 12}
}

// SeasonalModelByName resolve o modelo configurado; nomes desconhecidos usam o padrão
func SeasonalModelByName(name string) SeasonalModel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SeasonalityQuarterly:
		return QuarterlySeasonality{}
	case SeasonalityNone:
		return NoSeasonality{}
	default:
		return DefaultSeasonality()
	}
}
