package quantex

import "context"

// AffiliateRecord reports an account's standing in the referral program:
// whether it is enrolled, its referral code, and accrued commission by
// asset.
type AffiliateRecord struct {
	Enrolled     bool               `json:"enrolled"`
	Code         string             `json:"code,omitempty"`
	ReferredBy   string             `json:"referredBy,omitempty"`
	Referrals    int                `json:"referrals"`
	Commission   map[string]float64 `json:"commission,omitempty"`
	CommissionPc float64            `json:"commissionPercent"`
}

type affiliateEnvelope struct {
	Message   string          `json:"message"`
	Affiliate AffiliateRecord `json:"affiliate"`
}

// AffiliateStatus fetches the authenticated account's referral-program
// standing.
func (c *Client) AffiliateStatus(ctx context.Context) (AffiliateRecord, error) {
	if err := c.requireAuth(); err != nil {
		return AffiliateRecord{}, err
	}
	var envelope affiliateEnvelope
	if err := c.do(ctx, "GET", "/affiliate", nil, &envelope); err != nil {
		return AffiliateRecord{}, err
	}
	return envelope.Affiliate, nil
}

// UpdateAffiliateStatus enrolls the authenticated account in or withdraws
// it from the referral program. Enrolling issues a referral code; accrued
// commission survives withdrawal.
//
// UpdateAffiliateStatus may return an error when the client is
// unauthenticated or the backend rejects the change.
func (c *Client) UpdateAffiliateStatus(ctx context.Context, enroll bool) (AffiliateRecord, error) {
	if err := c.requireAuth(); err != nil {
		return AffiliateRecord{}, err
	}

	var envelope affiliateEnvelope
	err := c.do(ctx, "PUT", "/affiliate", struct {
		Enrolled bool `json:"enrolled"`
	}{Enrolled: enroll}, &envelope)
	c.emitAudit(ctx, auditEventAffiliateStatusChanged, err == nil, c.currentUserID(), "/affiliate", err, nil)
	if err != nil {
		return AffiliateRecord{}, err
	}
	return envelope.Affiliate, nil
}
