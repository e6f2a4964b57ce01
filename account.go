package quantex

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// RegistrationRequest carries the fields of a new-account application.
// Submitting it does not create the account: the backend emails a
// confirmation code, and the account exists only after
// [Client.ConfirmRegistration] succeeds with that code.
type RegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Referral string `json:"referral,omitempty"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type confirmPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

// Login authenticates against the backend and, on success, adopts the
// returned account record and bearer token as the client session, writing
// both to the credential store.
//
// Login may return an error when input validation, the backend call, or
// credential persistence fails. Backend rejections surface as *APIError
// carrying the backend's message verbatim.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if !validEmail(email) || password == "" {
		return LoginResult{}, ErrInvalidLoginInput
	}

	var envelope loginEnvelope
	err := c.do(ctx, "POST", "/login", loginPayload{Email: email, Password: password}, &envelope)
	if err != nil {
		c.metricInc(MetricLoginFailure)
		c.emitAudit(ctx, auditEventLoginFailure, false, "", "/login", err, nil)
		return LoginResult{}, err
	}

	if err := c.AdoptSession(ctx, envelope.User, envelope.Token); err != nil {
		c.metricInc(MetricLoginFailure)
		return LoginResult{}, err
	}

	c.metricInc(MetricLoginSuccess)
	c.emitAudit(ctx, auditEventLoginSuccess, true, envelope.User.ID, "/login", nil, nil)
	return LoginResult{User: envelope.User, Token: envelope.Token, Message: envelope.Message}, nil
}

// RequestRegistration submits a new-account application. The backend
// responds by emailing a confirmation code to the given address; the
// returned message is the human-readable status line to show the user.
//
// RequestRegistration may return an error when input validation or the
// backend call fails.
func (c *Client) RequestRegistration(ctx context.Context, req RegistrationRequest) (string, error) {
	if !validEmail(req.Email) || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return "", ErrInvalidRegistration
	}

	var envelope messageEnvelope
	err := c.do(ctx, "POST", "/register", req, &envelope)
	if err != nil {
		c.metricInc(MetricRegistrationFailure)
		c.emitAudit(ctx, auditEventRegistrationRequest, false, "", "/register", err, nil)
		return "", err
	}

	c.emitAudit(ctx, auditEventRegistrationRequest, true, "", "/register", nil, nil)
	return envelope.Message, nil
}

// ConfirmRegistration exchanges the emailed confirmation code for a live
// account. On success the backend returns the created record and a bearer
// token, and the client adopts them as its session.
//
// ConfirmRegistration may return an error when input validation, the
// backend call, or credential persistence fails.
func (c *Client) ConfirmRegistration(ctx context.Context, email, code string) (LoginResult, error) {
	if !validEmail(email) || strings.TrimSpace(code) == "" {
		return LoginResult{}, ErrInvalidConfirmationCode
	}

	var envelope loginEnvelope
	err := c.do(ctx, "POST", "/register/confirm", confirmPayload{Email: email, Code: code}, &envelope)
	if err != nil {
		c.metricInc(MetricRegistrationFailure)
		c.emitAudit(ctx, auditEventRegistrationConfirm, false, "", "/register/confirm", err, nil)
		return LoginResult{}, err
	}

	if err := c.AdoptSession(ctx, envelope.User, envelope.Token); err != nil {
		c.metricInc(MetricRegistrationFailure)
		return LoginResult{}, err
	}

	c.metricInc(MetricRegistrationSuccess)
	c.emitAudit(ctx, auditEventRegistrationConfirm, true, envelope.User.ID, "/register/confirm", nil, nil)
	return LoginResult{User: envelope.User, Token: envelope.Token, Message: envelope.Message}, nil
}

// RequestPasswordReset asks the backend to email a reset code to the
// given address. The backend answers with the same message whether or not
// the address has an account; the SDK passes that through unchanged.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if !validEmail(email) {
		return "", ErrInvalidPasswordReset
	}

	var envelope messageEnvelope
	err := c.do(ctx, "POST", "/password/reset-request", struct {
		Email string `json:"email"`
	}{Email: email}, &envelope)

	c.metricInc(MetricPasswordResetRequest)
	c.emitAudit(ctx, auditEventPasswordResetRequest, err == nil, "", "/password/reset-request", err, nil)
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

// ResetPassword completes the reset flow with the emailed code and the
// new password. The session is not touched: the caller logs in again with
// the new credentials.
//
// ResetPassword may return an error when input validation or the backend
// call fails.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	if !validEmail(email) || strings.TrimSpace(code) == "" || newPassword == "" {
		return "", ErrInvalidPasswordReset
	}

	var envelope messageEnvelope
	err := c.do(ctx, "POST", "/password/reset", struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}{Email: email, Code: code, NewPassword: newPassword}, &envelope)

	c.metricInc(MetricPasswordResetConfirm)
	c.emitAudit(ctx, auditEventPasswordResetConfirm, err == nil, "", "/password/reset", err, nil)
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

// ChangePassword rotates the password of the authenticated account. The
// current session token remains valid; the backend does not revoke it on
// password change.
//
// ChangePassword may return an error when the client is unauthenticated,
// input validation fails, or the backend rejects the current password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	if err := c.requireAuth(); err != nil {
		return "", err
	}
	if currentPassword == "" || newPassword == "" {
		return "", ErrInvalidPasswordReset
	}

	userID := ""
	if u, ok := c.CurrentUser(); ok {
		userID = u.ID
	}

	var envelope messageEnvelope
	err := c.do(ctx, "POST", "/password/change", struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{CurrentPassword: currentPassword, NewPassword: newPassword}, &envelope)

	c.emitAudit(ctx, auditEventPasswordChange, err == nil, userID, "/password/change", err, nil)
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

// UserByID fetches the canonical account record for the given id. This is
// the same endpoint session hydration revalidates against.
//
// UserByID may return an error when the client is unauthenticated, the id
// is empty, or the backend call fails.
func (c *Client) UserByID(ctx context.Context, id string) (User, error) {
	if err := c.requireAuth(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(id) == "" {
		return User{}, ErrInvalidUserID
	}

	var envelope userEnvelope
	if err := c.do(ctx, "GET", "/users/"+url.PathEscape(id), nil, &envelope); err != nil {
		return User{}, err
	}
	if envelope.User.ID == "" {
		return User{}, fmt.Errorf("backend returned no user record for id %q", id)
	}
	return envelope.User, nil
}
