package wizishop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Order status code bounds accepted by ListOrders.
const (
	MinOrderStatusCode = 0
	MaxOrderStatusCode = 50
)

// DateLayout is the date format of order filters.
const DateLayout = "2006-01-02 15:04:05"

// OrderStatus is the slug of an order status transition.
type OrderStatus string

// Order statuses an order can be moved to. StatusShip is set through
// ShipOrder, which also carries tracking numbers.
const (
	StatusPendingPayment             OrderStatus = "pending_payment"
	StatusPendingPaymentVerification OrderStatus = "pending_payment_verification"
	StatusPendingReplenishment       OrderStatus = "pending_replenishment"
	StatusPendingPreparation         OrderStatus = "pending_preparation"
	StatusPreparing                  OrderStatus = "preparing"
	StatusPartiallySent              OrderStatus = "partially_sent"
	StatusShip                       OrderStatus = "ship"
	StatusDelivered                  OrderStatus = "delivered"
	StatusReturn                     OrderStatus = "return"
	StatusReturned                   OrderStatus = "returned"
	StatusRefunded                   OrderStatus = "refunded"
	StatusCancel                     OrderStatus = "cancel"
)

// StatusCodeAbandoned is the code of abandoned carts. No transition leads
// to it.
const StatusCodeAbandoned = 0

var orderStatusCodes = map[OrderStatus]int{
	StatusPendingPayment:             5,
	StatusPendingPaymentVerification: 10,
	StatusPendingReplenishment:       11,
	StatusPendingPreparation:         20,
	StatusPreparing:                  25,
	StatusPartiallySent:              29,
	StatusShip:                       30,
	StatusDelivered:                  35,
	StatusReturn:                     40,
	StatusReturned:                   45,
	StatusRefunded:                   46,
	StatusCancel:                     50,
}

// Code returns the numeric status code of s.
func (s OrderStatus) Code() (int, bool) {
	code, ok := orderStatusCodes[s]
	return code, ok
}

// OrderStatuses returns every known status ordered by code.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPendingPayment,
		StatusPendingPaymentVerification,
		StatusPendingReplenishment,
		StatusPendingPreparation,
		StatusPreparing,
		StatusPartiallySent,
		StatusShip,
		StatusDelivered,
		StatusReturn,
		StatusReturned,
		StatusRefunded,
		StatusCancel,
	}
}

// OrderFilter narrows ListOrders. Zero dates and a nil StatusCode are not
// sent. Params carries any other query parameter, including "page" and
// "limit" for manual pagination.
type OrderFilter struct {
	StatusCode *int
	StartDate  time.Time
	EndDate    time.Time
	Params     url.Values
}

// WithStatusCode returns a copy of f filtering on code.
func (f OrderFilter) WithStatusCode(code int) OrderFilter {
	f.StatusCode = &code
	return f
}

func (f OrderFilter) validate() error {
	if f.StatusCode != nil && (*f.StatusCode < MinOrderStatusCode || *f.StatusCode > MaxOrderStatusCode) {
		return &ValidationError{
			Field: "status_code",
			Message: fmt.Sprintf(
				"must be between %d and %d, got %d",
				MinOrderStatusCode,
				MaxOrderStatusCode,
				*f.StatusCode,
			),
		}
	}
	return nil
}

func (f OrderFilter) query() url.Values {
	q := make(url.Values, len(f.Params)+3)
	for k, v := range f.Params {
		q[k] = v
	}
	if f.StatusCode != nil {
		q.Set("status_code", strconv.Itoa(*f.StatusCode))
	}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.Format(DateLayout))
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.Format(DateLayout))
	}
	return q
}

func orderRoute(id int64) string {
	return "orders/" + strconv.FormatInt(id, 10)
}

// ListOrders returns every order matching f. An out of range status code is
// rejected before any request is made.
func (c *Client) ListOrders(ctx context.Context, f OrderFilter) ([]Order, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	return fetchAll[Order](ctx, c, "orders", f.query())
}

// GetOrder returns the order with the given id, or nil if it does not exist.
func (c *Client) GetOrder(ctx context.Context, id int64, params url.Values) (*Order, error) {
	var o Order
	found, err := c.fetch(ctx, orderRoute(id), params, &o)
	if err != nil || !found {
		return nil, err
	}
	return &o, nil
}

// GetOrderInvoice returns the invoice PDF of an order, or nil if none exists.
func (c *Client) GetOrderInvoice(ctx context.Context, id int64, params url.Values) ([]byte, error) {
	return c.fetchRaw(ctx, orderRoute(id)+"/invoice", params)
}

// GetOrderPickingSlip returns the picking slip PDF of an order.
func (c *Client) GetOrderPickingSlip(ctx context.Context, id int64, params url.Values) ([]byte, error) {
	return c.fetchRaw(ctx, orderRoute(id)+"/picking_slip", params)
}

// GetOrderDeliverySlip returns the delivery slip PDF of an order.
func (c *Client) GetOrderDeliverySlip(ctx context.Context, id int64, params url.Values) ([]byte, error) {
	return c.fetchRaw(ctx, orderRoute(id)+"/delivery_slip", params)
}

// SetOrderStatus moves an order to status and returns the updated order.
func (c *Client) SetOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	return c.setOrderStatus(ctx, id, status, nil)
}

// ShipOrder marks an order as sent with the given tracking numbers.
func (c *Client) ShipOrder(ctx context.Context, id int64, tracking []TrackingNumber) (*Order, error) {
	if tracking == nil {
		tracking = []TrackingNumber{}
	}
	return c.setOrderStatus(ctx, id, StatusShip, shipment{TrackingNumbers: tracking})
}

func (c *Client) setOrderStatus(
	ctx context.Context,
	id int64,
	status OrderStatus,
	payload any,
) (*Order, error) {
	if _, ok := status.Code(); !ok {
		return nil, &ValidationError{Field: "order status", Message: "unknown status " + string(status)}
	}

	var o Order
	route := orderRoute(id) + "/status/" + string(status)
	if _, err := c.mutate(ctx, http.MethodPut, route, payload, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrderCustomState declares a shop specific order state.
func (c *Client) CreateOrderCustomState(ctx context.Context, fields Fields) (Fields, error) {
	var out Fields
	if _, err := c.mutate(ctx, http.MethodPost, "ordercustomstate", fields, &out); err != nil {
		return nil, err
	}
	return out, nil
}
