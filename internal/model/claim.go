package model

import "time"

// Claim is a user's assertion of ownership over a reported item.
type Claim struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"itemId"`
	ItemTitle        string    `json:"itemTitle"`
	Claimant         Person    `json:"claimant"`
	VerificationNote string    `json:"verificationNote"`
	SubmittedAt      time.Time `json:"submittedAt"`
	State            string    `json:"state"`
}

// ClaimPending is the only modeled claim state. Approve and reject are
// actions, not states.
const ClaimPending = "pending"

// ClaimInput is the body of a claim submission.
type ClaimInput struct {
	VerificationNote string `json:"verificationNote"`
}
