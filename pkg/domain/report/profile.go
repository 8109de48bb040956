package report

import "time"

// UserProfile is the subset of the user document the report pipeline reads.
type UserProfile struct {
	UserID           string     `json:"userId"`
	CreatedAt        time.Time  `json:"createdAt"`
	IsAdmin          bool       `json:"isAdmin"`
	Tier             string     `json:"tier"`
	TrialEndsAt      *time.Time `json:"trialEndsAt,omitempty"`
	StripeCustomerID string     `json:"stripeCustomerId,omitempty"`
	// Subscribed is the stored category list, used when billing is unavailable.
	Subscribed []string `json:"subscribed,omitempty"`
	FCMTokens  []string `json:"fcmTokens,omitempty"`
}
