package quantex

import (
	"context"
	"net/url"
	"strings"
)

// OrderRequest places a spot order. Side is "buy" or "sell"; Type is
// "market" or "limit". Price is required for limit orders and ignored for
// market orders.
type OrderRequest struct {
	Symbol string  `json:"symbol"`
	Side   string  `json:"side"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price,omitempty"`
}

// PositionRequest opens a leveraged margin position. Direction is "long"
// or "short"; Leverage is the multiplier the backend applies to the
// committed margin.
type PositionRequest struct {
	Symbol    string  `json:"symbol"`
	Direction string  `json:"direction"`
	Margin    float64 `json:"margin"`
	Leverage  float64 `json:"leverage"`
}

// Order is the backend's record of a spot order or margin position.
type Order struct {
	ID        string  `json:"_id"`
	UserID    string  `json:"userId"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	PnL       float64 `json:"pnl,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type orderEnvelope struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

type ordersEnvelope struct {
	Message string  `json:"message"`
	Orders  []Order `json:"orders"`
}

func validOrder(req OrderRequest) bool {
	if strings.TrimSpace(req.Symbol) == "" || req.Amount <= 0 {
		return false
	}
	switch req.Side {
	case "buy", "sell":
	default:
		return false
	}
	switch req.Type {
	case "market":
		return true
	case "limit":
		return req.Price > 0
	default:
		return false
	}
}

// PlaceOrder submits a spot order. Execution is the backend's concern:
// the returned record may already be filled (market) or resting (limit).
// The request carries an idempotency key so a retried submit cannot
// double-execute.
//
// PlaceOrder may return an error when the client is unauthenticated,
// input validation fails, or the backend rejects the order.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (Order, error) {
	if err := c.requireAuth(); err != nil {
		return Order{}, err
	}
	if !validOrder(req) {
		return Order{}, ErrInvalidOrder
	}

	var envelope orderEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/trade/orders", req, &envelope)
	if err == nil {
		c.metricInc(MetricOrderSubmitted)
	}
	c.emitAudit(ctx, auditEventOrderSubmitted, err == nil, c.currentUserID(), "/trade/orders", err, func() map[string]string {
		return map[string]string{"symbol": req.Symbol, "side": req.Side}
	})
	if err != nil {
		return Order{}, err
	}
	return envelope.Order, nil
}

// OpenPosition opens a leveraged margin position. The committed margin is
// locked on the ledger until the position closes.
//
// OpenPosition may return an error when the client is unauthenticated,
// input validation fails, or the backend rejects the position.
func (c *Client) OpenPosition(ctx context.Context, req PositionRequest) (Order, error) {
	if err := c.requireAuth(); err != nil {
		return Order{}, err
	}
	if strings.TrimSpace(req.Symbol) == "" || req.Margin <= 0 || req.Leverage < 1 {
		return Order{}, ErrInvalidOrder
	}
	switch req.Direction {
	case "long", "short":
	default:
		return Order{}, ErrInvalidOrder
	}

	var envelope orderEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/trade/positions", req, &envelope)
	if err == nil {
		c.metricInc(MetricOrderSubmitted)
	}
	c.emitAudit(ctx, auditEventOrderSubmitted, err == nil, c.currentUserID(), "/trade/positions", err, func() map[string]string {
		return map[string]string{"symbol": req.Symbol, "direction": req.Direction}
	})
	if err != nil {
		return Order{}, err
	}
	return envelope.Order, nil
}

// ClosePosition settles an open margin position at the backend's current
// mark price. Realized profit or loss lands in the returned record's PnL.
//
// ClosePosition may return an error when the client is unauthenticated,
// the id is empty, or the backend rejects the close.
func (c *Client) ClosePosition(ctx context.Context, positionID string) (Order, error) {
	if err := c.requireAuth(); err != nil {
		return Order{}, err
	}
	if strings.TrimSpace(positionID) == "" {
		return Order{}, ErrInvalidOrder
	}

	var envelope orderEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/trade/positions/"+url.PathEscape(positionID)+"/close", nil, &envelope)
	c.emitAudit(ctx, auditEventOrderSubmitted, err == nil, c.currentUserID(), "/trade/positions/close", err, nil)
	if err != nil {
		return Order{}, err
	}
	return envelope.Order, nil
}

// Orders lists the authenticated account's orders and positions, newest
// first per the backend's ordering.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	var envelope ordersEnvelope
	if err := c.do(ctx, "GET", "/trade/orders", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// CancelOrder cancels a resting limit order. Filled or already-cancelled
// orders are rejected by the backend.
//
// CancelOrder may return an error when the client is unauthenticated, the
// id is empty, or the backend rejects the cancellation.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (Order, error) {
	if err := c.requireAuth(); err != nil {
		return Order{}, err
	}
	if strings.TrimSpace(orderID) == "" {
		return Order{}, ErrInvalidOrder
	}

	var envelope orderEnvelope
	err := c.do(ctx, "DELETE", "/trade/orders/"+url.PathEscape(orderID), nil, &envelope)
	if err != nil {
		return Order{}, err
	}
	return envelope.Order, nil
}
