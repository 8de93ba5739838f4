package models

// Order is a row from GET /customer/orders. The menu snapshot is embedded
// by the backend; the client never resolves menu_id itself.
type Order struct {
	ID         int64    `json:"id"`
	Menu       MenuItem `json:"menu"`
	Quantity   int      `json:"quantity"`
	TotalPrice int64    `json:"total_price"`
	Status     string   `json:"status"`
	Notes      string   `json:"notes"`
	OrderedAt  string   `json:"ordered_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every status the backend can report, in lifecycle order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// CanCancel reports whether the customer may still request cancellation.
// The backend rejects anything past pending; the transition itself is its call.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending
}

// CreateOrderInput is the body of POST /customer/orders.
type CreateOrderInput struct {
	MenuID   int64  `json:"menu_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}
