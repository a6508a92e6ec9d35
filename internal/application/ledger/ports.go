package ledger

import (
	"context"

	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// TxRunner executes a function inside one store transaction, passing
// repositories bound to that transaction. It guarantees all-or-nothing
// application for the movement ledger, and surfaces domain.ErrContention
// when the lock wait budget is exceeded.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assets repository.AssetRepository,
		stocks repository.StockRepository,
		purchases repository.PurchaseRepository,
		transfers repository.TransferRepository,
		expenditures repository.ExpenditureRepository,
	) error) error

	// RunAssignment opens a transaction scoped to the assignment
	// sub-ledger and the asset status it gates.
	RunAssignment(ctx context.Context, fn func(
		assets repository.AssetRepository,
		assignments repository.AssignmentRepository,
	) error) error
}
