package pgsql

import (
	"context"
	"fmt"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBalanceRepository is the ledger-store read side of balance aggregation.
// It runs a single grouped query per call and holds no transaction; the
// database's own snapshot semantics cover concurrent writers.
type PgxBalanceRepository struct {
	pool *pgxpool.Pool
}

// newPgxBalanceRepository creates a new repository for balance aggregation.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{pool: pool}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// SumLegAmountsByUser sums live leg amounts per (account, instrument). The
// sum runs on NUMERIC in the database and scans into a decimal, so no stage
// of the aggregation goes through floating point. Legs whose event is soft
// deleted are filtered out in the WHERE clause, and pairs without legs never
// appear because the grouping only sees existing rows.
func (r *PgxBalanceRepository) SumLegAmountsByUser(ctx context.Context, userID string) ([]domain.AccountBalance, error) {
	query := `
		SELECT
			a.account_id,
			a.name AS account_name,
			i.instrument_id,
			i.code,
			i.minor_unit,
			i.kind,
			SUM(l.amount_minor) AS amount_minor
		FROM legs l
		JOIN events e ON l.event_id = e.event_id
		JOIN accounts a ON e.account_id = a.account_id
		JOIN instruments i ON l.instrument_id = i.instrument_id
		WHERE e.user_id = $1
			AND e.deleted_at IS NULL
		GROUP BY a.account_id, a.name, i.instrument_id, i.code, i.minor_unit, i.kind;
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying balance data: %w", err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		var b domain.AccountBalance
		var kind string
		if err := rows.Scan(
			&b.AccountID,
			&b.AccountName,
			&b.InstrumentID,
			&b.InstrumentCode,
			&b.InstrumentMinorUnit,
			&kind,
			&b.AmountMinor,
		); err != nil {
			return nil, fmt.Errorf("error scanning balance row: %w", err)
		}
		b.InstrumentKind = domain.InstrumentKind(kind)
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}
