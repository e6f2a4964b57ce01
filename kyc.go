package quantex

import (
	"context"
	"strings"
)

// KYCSubmission carries the identity documents for verification.
// Document payloads travel as backend-storage references or data URLs,
// exactly as the caller obtained them; the SDK does not re-encode.
type KYCSubmission struct {
	FullName      string `json:"fullName"`
	Country       string `json:"country"`
	DocumentType  string `json:"documentType"`
	DocumentFront string `json:"documentFront"`
	DocumentBack  string `json:"documentBack,omitempty"`
	Selfie        string `json:"selfie,omitempty"`
}

// KYCRecord reports the verification state of an account. Status is one
// of the backend's lifecycle strings (unsubmitted, pending, approved,
// rejected); Reason is only set on rejection.
type KYCRecord struct {
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	SubmittedAt string `json:"submittedAt,omitempty"`
	ReviewedAt  string `json:"reviewedAt,omitempty"`
}

type kycEnvelope struct {
	Message string    `json:"message"`
	KYC     KYCRecord `json:"kyc"`
}

// SubmitKYC files identity documents for review. Resubmission after a
// rejection is allowed and replaces the previous filing; the backend
// rejects resubmission while a filing is pending or approved.
//
// SubmitKYC may return an error when the client is unauthenticated,
// input validation fails, or the backend rejects the submission.
func (c *Client) SubmitKYC(ctx context.Context, sub KYCSubmission) (KYCRecord, error) {
	if err := c.requireAuth(); err != nil {
		return KYCRecord{}, err
	}
	if strings.TrimSpace(sub.FullName) == "" || strings.TrimSpace(sub.Country) == "" ||
		strings.TrimSpace(sub.DocumentType) == "" || sub.DocumentFront == "" {
		return KYCRecord{}, ErrInvalidKYCSubmission
	}

	var envelope kycEnvelope
	err := c.do(ctx, "POST", "/kyc", sub, &envelope)
	if err == nil {
		c.metricInc(MetricKYCSubmitted)
	}
	c.emitAudit(ctx, auditEventKYCSubmitted, err == nil, c.currentUserID(), "/kyc", err, nil)
	if err != nil {
		return KYCRecord{}, err
	}
	return envelope.KYC, nil
}

// KYCStatus fetches the authenticated account's verification state. The
// cached user record carries a KYCStatus string too; this call is the
// authoritative read with rejection reason and timestamps.
func (c *Client) KYCStatus(ctx context.Context) (KYCRecord, error) {
	if err := c.requireAuth(); err != nil {
		return KYCRecord{}, err
	}
	var envelope kycEnvelope
	if err := c.do(ctx, "GET", "/kyc", nil, &envelope); err != nil {
		return KYCRecord{}, err
	}
	return envelope.KYC, nil
}
