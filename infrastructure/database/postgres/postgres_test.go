package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// regclassDriver responde a verificação de tabela com um único booleano
type regclassDriver struct {
	tables map[string]bool
}

func (d regclassDriver) Open(string) (driver.Conn, error) { return regclassConn{d.tables}, nil }

type regclassConn struct {
	tables map[string]bool
}

func (c regclassConn) Prepare(string) (driver.Stmt, error) { return regclassStmt{c.tables}, nil }
func (c regclassConn) Close() error                        { return nil }
func (c regclassConn) Begin() (driver.Tx, error)           { return nil, errors.New("sem transações") }

type regclassStmt struct {
	tables map[string]bool
}

func (s regclassStmt) Close() error  { return nil }
func (s regclassStmt) NumInput() int { return -1 }
func (s regclassStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("somente leitura")
}
func (s regclassStmt) Query(args []driver.Value) (driver.Rows, error) {
	table, _ := args[0].(string)
	return &regclassRows{exists: s.tables[table]}, nil
}

type regclassRows struct {
	exists bool
	done   bool
}

func (r *regclassRows) Columns() []string { return []string{"exists"} }
func (r *regclassRows) Close() error      { return nil }
func (r *regclassRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.exists
	return nil
}

func TestBuildSalesTableCheckQuery(t *testing.T) {
	query, args, err := BuildSalesTableCheckQuery("vendas.sales_records")
	require.NoError(t, err)

	assert.Equal(t, "SELECT to_regclass($1) IS NOT NULL", query)
	assert.Equal(t, []any{"vendas.sales_records"}, args)
}

func TestCheckSalesTable(t *testing.T) {
	sql.Register("regclass", regclassDriver{tables: map[string]bool{"sales_records": true}})

	db, err := sql.Open("regclass", "")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	assert.NoError(t, CheckSalesTable(ctx, db, "sales_records"))

	err = CheckSalesTable(ctx, db, "vendas_antigas")
	assert.ErrorIs(t, err, ErrSalesTableNotFound)
	assert.Contains(t, err.Error(), "vendas_antigas")
}
