package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseableDate indica que nenhum formato aceito reconheceu a data
var ErrUnparseableDate = errors.New("unparseable date")

// Formatos ISO tentados quando a data contém '-'
var isoLayouts = []string{
	time.DateOnly,
	"2006-1-2",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04",
}

// Formatos genéricos, última tentativa antes de desistir
var genericLayouts = []string{
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"20060102",
	"Jan 2006",
	"January 2006",
}

// ParseFlexibleDate interpreta datas em formatos heterogêneos, nesta ordem:
//  1. contém '/': três partes dia/mês/ano
//  2. contém '-': ISO ano-mês-dia
//  3. formatos genéricos
//
// O resultado é sempre em UTC, sem componente de horário relevante para agrupamento.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, ErrUnparseableDate
	}

	if strings.Contains(dateStr, "/") {
		if date, ok := parseDayMonthYear(dateStr); ok {
			return date, nil
		}
	} else if strings.Contains(dateStr, "-") {
		if date, ok := parseWithLayouts(dateStr, isoLayouts); ok {
			return date, nil
		}
	}

	if date, ok := parseWithLayouts(dateStr, genericLayouts); ok {
		return date, nil
	}

	return time.Time{}, ErrUnparseableDate
}

func parseDayMonthYear(dateStr string) (time.Time, bool) {
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	// O ano pode vir acompanhado de horário ("15/02/2024 10:30")
	yearPart := strings.Fields(parts[2])
	if len(yearPart) == 0 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearPart[0])
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Rejeita dias inexistentes (31/02) em vez de rolar para o mês seguinte
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, false
	}

	return date, true
}

func parseWithLayouts(dateStr string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			return StartOfDay(date), true
		}
	}
	return time.Time{}, false
}

// StartOfDay descarta o horário e o fuso, mantendo a data do calendário
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek retorna o domingo que inicia a semana da data
func StartOfWeek(date time.Time) time.Time {
	day := StartOfDay(date)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth retorna o primeiro dia do mês da data
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
