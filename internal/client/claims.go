package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erazemk/unifind/internal/model"
)

// SubmitClaim files an ownership claim for a report.
func (c *Client) SubmitClaim(ctx context.Context, token, reportID string, in model.ClaimInput) (*model.Claim, error) {
	var claim model.Claim
	path := "/api/reports/" + url.PathEscape(reportID) + "/claims"
	if err := c.do(ctx, http.MethodPost, path, token, in, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListClaims returns the claims awaiting verification.
func (c *Client) ListClaims(ctx context.Context, token string) ([]model.Claim, error) {
	var claims []model.Claim
	if err := c.do(ctx, http.MethodGet, "/api/claims", token, nil, &claims); err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	return claims, nil
}

// ApproveClaim records an admin's approval of a claim.
func (c *Client) ApproveClaim(ctx context.Context, token, claimID string) error {
	return c.do(ctx, http.MethodPost, "/api/claims/"+url.PathEscape(claimID)+"/approve", token, nil, nil)
}

// RejectClaim records an admin's rejection of a claim.
func (c *Client) RejectClaim(ctx context.Context, token, claimID string) error {
	return c.do(ctx, http.MethodPost, "/api/claims/"+url.PathEscape(claimID)+"/reject", token, nil, nil)
}
