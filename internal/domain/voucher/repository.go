package voucher

import (
	"context"

	"github.com/promokit/voucheradmin/internal/types"
)

// Repository defines the interface for voucher data access. The concrete
// implementation talks to the voucher backend over REST; a caching
// decorator wraps it with the same signature.
type Repository interface {
	List(ctx context.Context, filter *types.VoucherFilter) (*types.Page[Voucher], error)
	Get(ctx context.Context, id int64) (*Voucher, error)
	GetByCode(ctx context.Context, code string) (*Voucher, error)
	Create(ctx context.Context, v *Voucher) (*Voucher, error)
	Update(ctx context.Context, id int64, input *UpdateInput) (*Voucher, error)
	// Delete soft-deletes: the record disappears from default listings
	// but stays recoverable through Restore.
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	// Use asks the backend to increment the usage counter and returns
	// the updated record.
	Use(ctx context.Context, id int64) (*Voucher, error)
}
