package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// lockTimeout bounds how long a transaction waits on a row lock before
// the store reports contention instead of queueing indefinitely.
const lockTimeout = "3s"

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories and
// commits, or rolls back on error. Lock waits beyond the budget surface
// as domain.ErrContention.
func (r *TxRunner) Run(ctx context.Context, fn func(
	assets repository.AssetRepository,
	stocks repository.StockRepository,
	purchases repository.PurchaseRepository,
	transfers repository.TransferRepository,
	expenditures repository.ExpenditureRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	err = fn(
		NewAssetRepository(tx),
		NewStockRepository(tx),
		NewPurchaseRepository(tx),
		NewTransferRepository(tx),
		NewExpenditureRepository(tx),
	)
	if err != nil {
		if isLockTimeout(err) {
			return fmt.Errorf("%w: %v", domain.ErrContention, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAssignment begins a transaction scoped to assets and assignments
// (status transitions).
func (r *TxRunner) RunAssignment(ctx context.Context, fn func(
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}

	if err := fn(NewAssetRepository(tx), NewAssignmentRepository(tx)); err != nil {
		if isLockTimeout(err) {
			return fmt.Errorf("%w: %v", domain.ErrContention, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
