package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRecorder answers UPDATEs with a fixed affected-row count.
type execRecorder struct {
	updated int
	stmts   []string
	args    [][]any
}

func (e *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.stmts = append(e.stmts, sql)
	e.args = append(e.args, args)
	if strings.Contains(sql, "UPDATE raw_materials") {
		if e.updated == 0 {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not used")
}

func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not used")
}

func (e *execRecorder) Begin(context.Context) (pgx.Tx, error) {
	panic("not used")
}

func TestDeduct_ConditionalUpdate(t *testing.T) {
	rec := &execRecorder{updated: 1}
	repo := NewRepo(rec)
	id := uuid.New()

	err := repo.Deduct(context.Background(), id, decimal.NewFromInt(8), ReasonProduction, nil, "batch")
	require.NoError(t, err)

	require.Len(t, rec.stmts, 2)
	assert.Contains(t, rec.stmts[0], "stock_quantity >= $2")
	assert.Contains(t, rec.stmts[1], "INSERT INTO stock_movements")
	moved := rec.args[1][1].(decimal.Decimal)
	assert.True(t, moved.Equal(decimal.NewFromInt(-8)), "movement is signed")
	assert.Equal(t, string(MoveOut), rec.args[1][2])
}

func TestDeduct_NoRowMeansStockChanged(t *testing.T) {
	rec := &execRecorder{updated: 0}
	err := NewRepo(rec).Deduct(context.Background(), uuid.New(), decimal.NewFromInt(3), ReasonLoss, nil, "")
	assert.ErrorIs(t, err, ErrStockChanged)
	assert.Len(t, rec.stmts, 1, "no movement logged")
}

func TestAddAndDeduct_RejectNonPositive(t *testing.T) {
	repo := NewRepo(&execRecorder{updated: 1})
	assert.Error(t, repo.Deduct(context.Background(), uuid.New(), decimal.Zero, ReasonManual, nil, ""))
	assert.Error(t, repo.Add(context.Background(), uuid.New(), decimal.NewFromInt(-1), ReasonGRN, nil, ""))
}
