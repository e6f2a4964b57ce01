package quantex

import (
	"context"
	"net/url"
	"strings"
)

// Asset is a tradeable currency as configured by the back office.
// Disabled assets stay on the books but refuse new transactions.
type Asset struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Enabled       bool    `json:"enabled"`
	WithdrawalFee float64 `json:"withdrawalFee"`
	MinDeposit    float64 `json:"minDeposit"`
	MinWithdrawal float64 `json:"minWithdrawal"`
}

// UserLimits caps a single account's daily wallet activity, denominated
// in the exchange's accounting currency. A zero field means unlimited.
type UserLimits struct {
	DailyWithdrawal float64 `json:"dailyWithdrawal"`
	DailyDeposit    float64 `json:"dailyDeposit"`
	DailyTransfer   float64 `json:"dailyTransfer"`
}

// EmailDispatch is a back-office email to one user or, when Broadcast is
// set, to every registered account.
type EmailDispatch struct {
	RecipientEmail string `json:"recipientEmail,omitempty"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Broadcast      bool   `json:"broadcast,omitempty"`
}

type usersEnvelope struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}

type assetsEnvelope struct {
	Message string  `json:"message"`
	Assets  []Asset `json:"assets"`
}

// adminDo wraps every admin call, reads included: the backend enforces the
// role, the SDK just counts and audits the attempt.
func (c *Client) adminDo(ctx context.Context, method, path string, body, out any, action string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	err := c.do(ctx, method, path, body, out)
	if err == nil {
		c.metricInc(MetricAdminAction)
	}
	c.emitAudit(ctx, auditEventAdminAction, err == nil, c.currentUserID(), path, err, func() map[string]string {
		return map[string]string{"action": action}
	})
	return err
}

// ListUsers returns every registered account. Back-office only; the
// backend rejects callers without the admin role.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var envelope usersEnvelope
	if err := c.adminDo(ctx, "GET", "/admin/users", nil, &envelope, "list_users"); err != nil {
		return nil, err
	}
	return envelope.Users, nil
}

// ApproveTransaction credits or releases a pending wallet transaction.
//
// ApproveTransaction may return an error when the client is
// unauthenticated, the id is empty, or the backend rejects the approval.
func (c *Client) ApproveTransaction(ctx context.Context, transactionID string) (Transaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return Transaction{}, ErrInvalidTransaction
	}
	var envelope transactionEnvelope
	err := c.adminDo(ctx, "POST", "/admin/transactions/"+url.PathEscape(transactionID)+"/approve", nil, &envelope, "approve_transaction")
	if err != nil {
		return Transaction{}, err
	}
	return envelope.Transaction, nil
}

// RejectTransaction declines a pending wallet transaction, returning any
// locked balance. The reason is shown to the user.
//
// RejectTransaction may return an error when the client is
// unauthenticated, the id is empty, or the backend rejects the call.
func (c *Client) RejectTransaction(ctx context.Context, transactionID, reason string) (Transaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return Transaction{}, ErrInvalidTransaction
	}
	var envelope transactionEnvelope
	err := c.adminDo(ctx, "POST", "/admin/transactions/"+url.PathEscape(transactionID)+"/reject", struct {
		Reason string `json:"reason"`
	}{Reason: reason}, &envelope, "reject_transaction")
	if err != nil {
		return Transaction{}, err
	}
	return envelope.Transaction, nil
}

// Assets lists the configured tradeable assets, enabled or not.
func (c *Client) Assets(ctx context.Context) ([]Asset, error) {
	var envelope assetsEnvelope
	if err := c.adminDo(ctx, "GET", "/admin/assets", nil, &envelope, "list_assets"); err != nil {
		return nil, err
	}
	return envelope.Assets, nil
}

// UpsertAsset creates or reconfigures a tradeable asset, keyed by symbol.
//
// UpsertAsset may return an error when the client is unauthenticated, the
// symbol is empty, or the backend rejects the change.
func (c *Client) UpsertAsset(ctx context.Context, asset Asset) (Asset, error) {
	if strings.TrimSpace(asset.Symbol) == "" {
		return Asset{}, ErrInvalidAsset
	}
	var envelope struct {
		Message string `json:"message"`
		Asset   Asset  `json:"asset"`
	}
	err := c.adminDo(ctx, "PUT", "/admin/assets/"+url.PathEscape(asset.Symbol), asset, &envelope, "upsert_asset")
	if err != nil {
		return Asset{}, err
	}
	return envelope.Asset, nil
}

// DeleteAsset removes an asset from the books. The backend refuses while
// any account holds a balance in it.
//
// DeleteAsset may return an error when the client is unauthenticated, the
// symbol is empty, or the backend rejects the removal.
func (c *Client) DeleteAsset(ctx context.Context, symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return ErrInvalidAsset
	}
	var envelope messageEnvelope
	return c.adminDo(ctx, "DELETE", "/admin/assets/"+url.PathEscape(symbol), nil, &envelope, "delete_asset")
}

// SetUserLimits replaces an account's daily wallet-activity caps.
//
// SetUserLimits may return an error when the client is unauthenticated,
// the user id is empty, or the backend rejects the change.
func (c *Client) SetUserLimits(ctx context.Context, userID string, limits UserLimits) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	var envelope messageEnvelope
	return c.adminDo(ctx, "PUT", "/admin/users/"+url.PathEscape(userID)+"/limits", limits, &envelope, "set_user_limits")
}

// SetTraderTier assigns an account's fee tier.
//
// SetTraderTier may return an error when the client is unauthenticated,
// either argument is empty, or the backend rejects the assignment.
func (c *Client) SetTraderTier(ctx context.Context, userID, tier string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(tier) == "" {
		return ErrInvalidUserID
	}
	var envelope messageEnvelope
	return c.adminDo(ctx, "PUT", "/admin/users/"+url.PathEscape(userID)+"/tier", struct {
		Tier string `json:"tier"`
	}{Tier: tier}, &envelope, "set_trader_tier")
}

// ApproveKYC marks an account's pending identity filing as verified.
//
// ApproveKYC may return an error when the client is unauthenticated, the
// user id is empty, or the backend rejects the approval.
func (c *Client) ApproveKYC(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	var envelope messageEnvelope
	return c.adminDo(ctx, "POST", "/admin/users/"+url.PathEscape(userID)+"/kyc/approve", nil, &envelope, "approve_kyc")
}

// RejectKYC declines an account's pending identity filing. The reason is
// surfaced to the user and resubmission reopens.
//
// RejectKYC may return an error when the client is unauthenticated, the
// user id is empty, or the backend rejects the call.
func (c *Client) RejectKYC(ctx context.Context, userID, reason string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	var envelope messageEnvelope
	return c.adminDo(ctx, "POST", "/admin/users/"+url.PathEscape(userID)+"/kyc/reject", struct {
		Reason string `json:"reason"`
	}{Reason: reason}, &envelope, "reject_kyc")
}

// SendEmail dispatches a back-office email to one registered account.
//
// SendEmail may return an error when the client is unauthenticated, the
// dispatch is incomplete, or the backend rejects it.
func (c *Client) SendEmail(ctx context.Context, dispatch EmailDispatch) error {
	if !validEmail(dispatch.RecipientEmail) || dispatch.Subject == "" || dispatch.Body == "" {
		return ErrInvalidEmailDispatch
	}
	dispatch.Broadcast = false
	var envelope messageEnvelope
	return c.adminDo(ctx, "POST", "/admin/emails", dispatch, &envelope, "send_email")
}

// SendBulkEmail dispatches a back-office email to every registered
// account. Delivery is queued server-side; a success response means
// accepted, not delivered.
//
// SendBulkEmail may return an error when the client is unauthenticated,
// the dispatch is incomplete, or the backend rejects it.
func (c *Client) SendBulkEmail(ctx context.Context, subject, body string) error {
	if subject == "" || body == "" {
		return ErrInvalidEmailDispatch
	}
	var envelope messageEnvelope
	return c.adminDo(ctx, "POST", "/admin/emails", EmailDispatch{
		Subject:   subject,
		Body:      body,
		Broadcast: true,
	}, &envelope, "send_bulk_email")
}
