// Package billing resolves the training modules a user pays for.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// CategoriesMetadataKey is the price metadata key listing the modules a
// price unlocks, comma separated.
const CategoriesMetadataKey = "categories"

// ProfileStore is the part of the database the source reads.
type ProfileStore interface {
	GetUserProfile(ctx context.Context, userID string) (*report.UserProfile, error)
}

// SubscriptionLister lists a customer's subscriptions.
type SubscriptionLister func(ctx context.Context, customerID string) ([]*stripe.Subscription, error)

// StripeSubscriptionSource reads entitlements from Stripe and falls back to
// the list stored on the user profile when the user has no Stripe customer
// or Stripe is unreachable.
type StripeSubscriptionSource struct {
	list     SubscriptionLister
	profiles ProfileStore
}

var _ shared.SubscriptionSource = (*StripeSubscriptionSource)(nil)

// NewStripeSubscriptionSource builds a source. An empty secret key disables
// Stripe and uses the stored list only.
func NewStripeSubscriptionSource(secretKey string, profiles ProfileStore) *StripeSubscriptionSource {
	s := &StripeSubscriptionSource{profiles: profiles}
	if secretKey != "" {
		sc := &client.API{}
		sc.Init(secretKey, nil)
		s.list = apiLister(sc)
	}
	return s
}

// NewSubscriptionSourceWithLister is used by tests and tools that stub Stripe.
func NewSubscriptionSourceWithLister(list SubscriptionLister, profiles ProfileStore) *StripeSubscriptionSource {
	return &StripeSubscriptionSource{list: list, profiles: profiles}
}

func apiLister(sc *client.API) SubscriptionLister {
	return func(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
		params := &stripe.SubscriptionListParams{
			Customer: stripe.String(customerID),
			Status:   stripe.String("all"),
		}
		params.Context = ctx

		var subs []*stripe.Subscription
		iter := sc.Subscriptions.List(params)
		for iter.Next() {
			subs = append(subs, iter.Subscription())
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		return subs, nil
	}
}

func (s *StripeSubscriptionSource) GetSubscribedCategories(ctx context.Context, userID string) ([]string, error) {
	profile, err := s.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if s.list == nil || profile.StripeCustomerID == "" {
		return profile.Subscribed, nil
	}

	subs, err := s.list(ctx, profile.StripeCustomerID)
	if err != nil {
		slog.Warn("Stripe lookup failed, using stored subscriptions", "user_id", userID, "error", err)
		return profile.Subscribed, nil
	}
	return CategoriesFromSubscriptions(subs), nil
}

// CategoriesFromSubscriptions collects the modules unlocked by active or
// trialing subscriptions, in first-seen order without duplicates.
func CategoriesFromSubscriptions(subs []*stripe.Subscription) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, sub := range subs {
		if sub == nil || !entitled(sub.Status) || sub.Items == nil {
			continue
		}
		for _, item := range sub.Items.Data {
			if item == nil || item.Price == nil {
				continue
			}
			for _, c := range strings.Split(item.Price.Metadata[CategoriesMetadataKey], ",") {
				c = strings.ToLower(strings.TrimSpace(c))
				if c == "" {
					continue
				}
				if _, ok := seen[c]; ok {
					continue
				}
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}

func entitled(status stripe.SubscriptionStatus) bool {
	return status == stripe.SubscriptionStatusActive || status == stripe.SubscriptionStatusTrialing
}
