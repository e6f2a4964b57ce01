package quantex

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventLoginSuccess           = "login_success"
	auditEventLoginFailure           = "login_failure"
	auditEventLogout                 = "logout"
	auditEventHydrateSuccess         = "hydrate_success"
	auditEventHydrateEmpty           = "hydrate_empty"
	auditEventHydrateFailure         = "hydrate_failure"
	auditEventSessionAdopted         = "session_adopted"
	auditEventRegistrationRequest    = "registration_request"
	auditEventRegistrationConfirm    = "registration_confirm"
	auditEventPasswordResetRequest   = "password_reset_request"
	auditEventPasswordResetConfirm   = "password_reset_confirm"
	auditEventPasswordChange         = "password_change"
	auditEventGatewayError           = "gateway_error"
	auditEventDepositSubmitted       = "deposit_submitted"
	auditEventWithdrawalSubmitted    = "withdrawal_submitted"
	auditEventTransferSubmitted      = "transfer_submitted"
	auditEventConversionSubmitted    = "conversion_submitted"
	auditEventOrderSubmitted         = "order_submitted"
	auditEventKYCSubmitted           = "kyc_submitted"
	auditEventAffiliateStatusChanged = "affiliate_status_changed"
	auditEventAdminAction            = "admin_action"
	auditEventMarketPollFailure      = "market_poll_failure"
)

// AuditErrorCode defines a public type used by quantex APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrAPIRejected        AuditErrorCode = "api_rejected"
	auditErrNotAuthenticated   AuditErrorCode = "not_authenticated"
	auditErrTimeout            AuditErrorCode = "timeout"
	auditErrInvalidInput       AuditErrorCode = "invalid_input"
	auditErrCredentialStore    AuditErrorCode = "credential_store_failure"
	auditErrTokenExpired       AuditErrorCode = "token_expired"
	auditErrTransport          AuditErrorCode = "transport_failure"
	auditErrInternal           AuditErrorCode = "internal_error"
	auditErrHydrateConcurrency AuditErrorCode = "hydrate_in_flight"
)

func (c *Client) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	path string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if c == nil || c.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Path:      path,
		RequestID: requestIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	c.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return auditErrAPIRejected
	case errors.Is(err, ErrNotAuthenticated):
		return auditErrNotAuthenticated
	case errors.Is(err, context.DeadlineExceeded):
		return auditErrTimeout
	case errors.Is(err, ErrInvalidLoginInput),
		errors.Is(err, ErrInvalidRegistration),
		errors.Is(err, ErrInvalidConfirmationCode),
		errors.Is(err, ErrInvalidPasswordReset),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidAsset),
		errors.Is(err, ErrInvalidOrder),
		errors.Is(err, ErrInvalidTransaction),
		errors.Is(err, ErrInvalidUserID),
		errors.Is(err, ErrInvalidEmailDispatch),
		errors.Is(err, ErrInvalidKYCSubmission):
		return auditErrInvalidInput
	case errors.Is(err, ErrHydrateInFlight):
		return auditErrHydrateConcurrency
	case errors.Is(err, errTokenExpired):
		return auditErrTokenExpired
	case errors.Is(err, errCredentialStore):
		return auditErrCredentialStore
	case errors.Is(err, errTransport):
		return auditErrTransport
	default:
		return auditErrInternal
	}
}
