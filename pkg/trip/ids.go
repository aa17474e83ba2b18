package trip

import "github.com/google/uuid"

// Prefixes for generated record ids.
const (
	PrefixScheduleItem = "item"
	PrefixShoppingItem = "shop"
	PrefixExpense      = "exp"
	PrefixCoupon       = "coupon"
	PrefixCategory     = "cat"
)

// IDFunc produces a fresh record id for a prefix.
type IDFunc func(prefix string) string

// NewID returns "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
