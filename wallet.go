package quantex

import (
	"context"
	"strings"
)

// DepositRequest announces an on-chain or fiat deposit for back-office
// crediting. TxID is the external transaction reference the user supplies
// as proof; the deposit stays pending until an administrator approves it.
type DepositRequest struct {
	Asset  string  `json:"asset"`
	Amount float64 `json:"amount"`
	Method string  `json:"method,omitempty"`
	TxID   string  `json:"txId,omitempty"`
}

// WithdrawalRequest asks the exchange to pay out to an external address.
// Withdrawals are queued for back-office approval, never paid instantly.
type WithdrawalRequest struct {
	Asset   string  `json:"asset"`
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
	Network string  `json:"network,omitempty"`
}

// TransferRequest moves balance between two accounts on the exchange
// ledger, addressed by the recipient's email.
type TransferRequest struct {
	Asset          string  `json:"asset"`
	Amount         float64 `json:"amount"`
	RecipientEmail string  `json:"recipientEmail"`
	Note           string  `json:"note,omitempty"`
}

// ConversionRequest swaps one held asset for another at the exchange's
// current quoted rate.
type ConversionRequest struct {
	FromAsset string  `json:"fromAsset"`
	ToAsset   string  `json:"toAsset"`
	Amount    float64 `json:"amount"`
}

// Transaction is the backend's record of any submitted wallet operation.
// Status is one of the backend's lifecycle strings (pending, approved,
// rejected).
type Transaction struct {
	ID        string  `json:"_id"`
	UserID    string  `json:"userId"`
	Kind      string  `json:"kind"`
	Asset     string  `json:"asset"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Reference string  `json:"reference,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type transactionEnvelope struct {
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}

type balancesEnvelope struct {
	Message  string  `json:"message"`
	Balances Balance `json:"balances"`
}

// Balances fetches the authenticated account's per-asset balances from
// the backend. This is the authoritative ledger view; the copy embedded
// in the cached user record may lag it between revalidations.
func (c *Client) Balances(ctx context.Context) (Balance, error) {
	if err := c.requireAuth(); err != nil {
		return Balance{}, err
	}
	var envelope balancesEnvelope
	if err := c.do(ctx, "GET", "/wallet/balances", nil, &envelope); err != nil {
		return Balance{}, err
	}
	return envelope.Balances, nil
}

// SubmitDeposit announces a deposit for crediting. The request carries an
// idempotency key so a retried submit cannot double-credit; callers may
// pin their own key via [WithIdempotencyKey].
//
// SubmitDeposit may return an error when the client is unauthenticated,
// input validation fails, or the backend rejects the submission.
func (c *Client) SubmitDeposit(ctx context.Context, req DepositRequest) (Transaction, error) {
	if err := c.requireAuth(); err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(req.Asset) == "" {
		return Transaction{}, ErrInvalidAsset
	}
	if req.Amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	var envelope transactionEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/wallet/deposits", req, &envelope)
	if err == nil {
		c.metricInc(MetricDepositSubmitted)
	}
	c.emitAudit(ctx, auditEventDepositSubmitted, err == nil, c.currentUserID(), "/wallet/deposits", err, func() map[string]string {
		return map[string]string{"asset": req.Asset}
	})
	if err != nil {
		return Transaction{}, err
	}
	return envelope.Transaction, nil
}

// SubmitWithdrawal queues a payout to an external address for back-office
// approval. Carries an idempotency key like all money-moving submits.
//
// SubmitWithdrawal may return an error when the client is
// unauthenticated, input validation fails, or the backend rejects the
// submission (insufficient balance, over-limit, frozen account).
func (c *Client) SubmitWithdrawal(ctx context.Context, req WithdrawalRequest) (Transaction, error) {
	if err := c.requireAuth(); err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(req.Asset) == "" {
		return Transaction{}, ErrInvalidAsset
	}
	if req.Amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	if strings.TrimSpace(req.Address) == "" {
		return Transaction{}, ErrInvalidTransaction
	}

	var envelope transactionEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/wallet/withdrawals", req, &envelope)
	if err == nil {
		c.metricInc(MetricWithdrawalSubmitted)
	}
	c.emitAudit(ctx, auditEventWithdrawalSubmitted, err == nil, c.currentUserID(), "/wallet/withdrawals", err, func() map[string]string {
		return map[string]string{"asset": req.Asset}
	})
	if err != nil {
		return Transaction{}, err
	}
	return envelope.Transaction, nil
}

// SubmitTransfer moves balance to another exchange account, addressed by
// email. Transfers settle immediately on the backend ledger when the
// recipient exists and balance suffices.
//
// SubmitTransfer may return an error when the client is unauthenticated,
// input validation fails, or the backend rejects the transfer.
func (c *Client) SubmitTransfer(ctx context.Context, req TransferRequest) (Transaction, error) {
	if err := c.requireAuth(); err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(req.Asset) == "" {
		return Transaction{}, ErrInvalidAsset
	}
	if req.Amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	if !validEmail(req.RecipientEmail) {
		return Transaction{}, ErrInvalidTransaction
	}

	var envelope transactionEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/wallet/transfers", req, &envelope)
	if err == nil {
		c.metricInc(MetricTransferSubmitted)
	}
	c.emitAudit(ctx, auditEventTransferSubmitted, err == nil, c.currentUserID(), "/wallet/transfers", err, func() map[string]string {
		return map[string]string{"asset": req.Asset}
	})
	if err != nil {
		return Transaction{}, err
	}
	return envelope.Transaction, nil
}

// SubmitConversion swaps between two held assets at the backend's current
// rate. The executed rate is the backend's, not the client preview; use
// [Client.PreviewConversion] only for display.
//
// SubmitConversion may return an error when the client is
// unauthenticated, input validation fails, or the backend rejects the
// conversion.
func (c *Client) SubmitConversion(ctx context.Context, req ConversionRequest) (Transaction, error) {
	if err := c.requireAuth(); err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(req.FromAsset) == "" || strings.TrimSpace(req.ToAsset) == "" ||
		strings.EqualFold(req.FromAsset, req.ToAsset) {
		return Transaction{}, ErrInvalidAsset
	}
	if req.Amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	var envelope transactionEnvelope
	err := c.do(withFreshIdempotencyKey(ctx), "POST", "/wallet/conversions", req, &envelope)
	if err == nil {
		c.metricInc(MetricConversionSubmitted)
	}
	c.emitAudit(ctx, auditEventConversionSubmitted, err == nil, c.currentUserID(), "/wallet/conversions", err, func() map[string]string {
		return map[string]string{"from": req.FromAsset, "to": req.ToAsset}
	})
	if err != nil {
		return Transaction{}, err
	}
	return envelope.Transaction, nil
}

// PreviewConversion estimates the proceeds of converting amount units of
// fromAsset into toAsset using the local quote table. It is display-only:
// the backend quotes the authoritative rate at execution time, so the
// preview and the executed amount can differ.
//
// PreviewConversion may return an error when market polling is disabled,
// the amount is not positive, or either symbol has no quote yet.
func (c *Client) PreviewConversion(fromAsset, toAsset string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	from, okFrom, err := c.Quote(strings.ToUpper(fromAsset))
	if err != nil {
		return 0, err
	}
	to, okTo, err := c.Quote(strings.ToUpper(toAsset))
	if err != nil {
		return 0, err
	}
	if !okFrom || !okTo || to.Price == 0 {
		return 0, ErrInvalidAsset
	}
	return amount * from.Price / to.Price, nil
}

func (c *Client) currentUserID() string {
	if u, ok := c.CurrentUser(); ok {
		return u.ID
	}
	return ""
}
