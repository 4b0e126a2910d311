package port

import "context"

// Repositories bundles transaction-scoped repositories handed to a
// RunInTx callback: every operation on them shares one transaction.
type Repositories struct {
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
}

// TxRunner scopes a unit of work to a single transaction. If fn
// returns an error every write it performed is rolled back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
