// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
)

const (
	DefaultSalesRecordTable = "sales_records"
	dateColumnLayout        = "02/01/2006"
)

// SalesRecordColumns são as colunas lidas da tabela de vendas, já com os
// nomes aceitos pelo Normalizer
var SalesRecordColumns = []string{
	"id",
	"customer_name",
	"email",
	"phone",
	"country",
	"sales_agent",
	"closing_agent",
	"sales_team",
	"product_type",
	"service_tier",
	"payment_method",
	"invoice_link",
	"amount_paid",
	"commission",
	"duration_months",
	"signup_date",
	"end_date",
	"data_month",
	"data_year",
	"is_long_term",
}

type SalesRecordRepository interface {
	ListRows(ctx context.Context) ([]map[string]any, error)
	InsertRows(ctx context.Context, rows []map[string]any) (int, error)
}

type salesRecordRepository struct {
	conn  postgres.Queryer
	table string
}

func NewSalesRecordRepository(conn postgres.Queryer, table string) SalesRecordRepository {
	if table == "" {
		table = DefaultSalesRecordTable
	}

	return &salesRecordRepository{
		conn:  conn,
		table: table,
	}
}

// BuildListQuery monta o SELECT de todas as vendas em ordem de inserção
func BuildListQuery(table string) (string, []any, error) {
	return squirrel.
		Select(SalesRecordColumns...).
		From(table).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *salesRecordRepository) ListRows(ctx context.Context) ([]map[string]any, error) {
	sqlQuery, args, err := BuildListQuery(r.table)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []map[string]any{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]map[string]any, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

// BuildInsertQuery monta o INSERT em lote das linhas informadas.
// Colunas ausentes em uma linha são gravadas como NULL.
func BuildInsertQuery(table string, rows []map[string]any) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert(table).
		Columns(SalesRecordColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		values := make([]any, 0, len(SalesRecordColumns))
		for _, column := range SalesRecordColumns {
			values = append(values, row[column])
		}
		query = query.Values(values...)
	}

	return query.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
}

func (r *salesRecordRepository) InsertRows(ctx context.Context, rows []map[string]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	sqlQuery, args, err := BuildInsertQuery(r.table, rows)
	if err != nil {
		return 0, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(affected), nil
}

func scanRow(rows *sql.Rows) (map[string]any, error) {
	var (
		id, customerName, email, phone, country              sql.NullString
		agent, closer, team, product, tier, payment, invoice sql.NullString
		dataMonth, dataYear                                  sql.NullString
		amount, commission, duration                         sql.NullFloat64
		signupDate, endDate                                  sql.NullTime
		isLongTerm                                           sql.NullBool
	)

	err := rows.Scan(
		&id, &customerName, &email, &phone, &country,
		&agent, &closer, &team, &product, &tier, &payment, &invoice,
		&amount, &commission, &duration,
		&signupDate, &endDate,
		&dataMonth, &dataYear,
		&isLongTerm,
	)
	if err != nil {
		return nil, err
	}

	row := map[string]any{}
	setString(row, "id", id)
	setString(row, "customer_name", customerName)
	setString(row, "email", email)
	setString(row, "phone", phone)
	setString(row, "country", country)
	setString(row, "sales_agent", agent)
	setString(row, "closing_agent", closer)
	setString(row, "sales_team", team)
	setString(row, "product_type", product)
	setString(row, "service_tier", tier)
	setString(row, "payment_method", payment)
	setString(row, "invoice_link", invoice)
	setString(row, "data_month", dataMonth)
	setString(row, "data_year", dataYear)

	if amount.Valid {
		row["amount_paid"] = amount.Float64
	}
	if commission.Valid {
		row["commission"] = commission.Float64
	}
	if duration.Valid {
		row["duration_months"] = duration.Float64
	}
	setDate(row, "signup_date", signupDate)
	setDate(row, "end_date", endDate)
	if isLongTerm.Valid {
		row["is_long_term"] = isLongTerm.Bool
	}

	return row, nil
}

func setString(row map[string]any, column string, value sql.NullString) {
	if value.Valid {
		row[column] = value.String
	}
}

func setDate(row map[string]any, column string, value sql.NullTime) {
	if value.Valid {
		row[column] = value.Time.UTC().Format(dateColumnLayout)
	}
}

// ParseDateColumn converte um texto de data das planilhas em valor para coluna DATE
func ParseDateColumn(value string, parse func(string) (time.Time, error)) any {
	if value == "" {
		return nil
	}
	date, err := parse(value)
	if err != nil {
		return nil
	}
	return date
}
