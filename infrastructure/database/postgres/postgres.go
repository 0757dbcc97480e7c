package postgres

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// ErrSalesTableNotFound indica que a tabela de vendas configurada não existe no banco
var ErrSalesTableNotFound = errors.New("sales table not found")

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// BuildSalesTableCheckQuery monta a consulta que resolve a tabela pelo search_path.
// Aceita nomes qualificados como "vendas.sales_records".
func BuildSalesTableCheckQuery(table string) (string, []any, error) {
	return squirrel.
		Select().
		Column("to_regclass(?) IS NOT NULL", table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// CheckSalesTable confirma que a tabela de vendas existe antes da primeira carga do snapshot
func CheckSalesTable(ctx context.Context, conn Queryer, table string) error {
	query, args, err := BuildSalesTableCheckQuery(table)
	if err != nil {
		return errors.Wrap(err, "erro ao construir a verificação da tabela")
	}

	var exists bool
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return errors.Wrapf(err, "erro ao verificar a tabela %s", table)
	}
	if !exists {
		return errors.Wrapf(ErrSalesTableNotFound, "tabela %s", table)
	}
	return nil
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}

	return tx.Commit()
}
