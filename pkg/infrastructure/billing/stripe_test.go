package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

type profileStub struct {
	profile *report.UserProfile
	err     error
}

func (p profileStub) GetUserProfile(ctx context.Context, userID string) (*report.UserProfile, error) {
	return p.profile, p.err
}

func sub(status stripe.SubscriptionStatus, categories ...string) *stripe.Subscription {
	items := make([]*stripe.SubscriptionItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, &stripe.SubscriptionItem{Price: &stripe.Price{Metadata: map[string]string{CategoriesMetadataKey: c}}})
	}
	return &stripe.Subscription{Status: status, Items: &stripe.SubscriptionItemList{Data: items}}
}

func TestCategoriesFromSubscriptions(t *testing.T) {
	subs := []*stripe.Subscription{
		sub(stripe.SubscriptionStatusActive, "Hitting, pitching"),
		sub(stripe.SubscriptionStatusCanceled, "throwing"),
		sub(stripe.SubscriptionStatusTrialing, "pitching,throwing"),
		nil,
		{Status: stripe.SubscriptionStatusActive},
	}

	assert.Equal(t, []string{"hitting", "pitching", "throwing"}, CategoriesFromSubscriptions(subs))
}

func TestGetSubscribedCategories_UsesStripe(t *testing.T) {
	var gotCustomer string
	src := NewSubscriptionSourceWithLister(
		func(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
			gotCustomer = customerID
			return []*stripe.Subscription{sub(stripe.SubscriptionStatusActive, "hitting")}, nil
		},
		profileStub{profile: &report.UserProfile{StripeCustomerID: "cus_1", Subscribed: []string{"pitching"}}},
	)

	cats, err := src.GetSubscribedCategories(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", gotCustomer)
	assert.Equal(t, []string{"hitting"}, cats)
}

func TestGetSubscribedCategories_Fallbacks(t *testing.T) {
	stored := []string{"pitching"}

	noCustomer := NewSubscriptionSourceWithLister(
		func(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
			t.Fatal("Stripe should not be called without a customer id")
			return nil, nil
		},
		profileStub{profile: &report.UserProfile{Subscribed: stored}},
	)
	cats, err := noCustomer.GetSubscribedCategories(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, stored, cats)

	stripeDown := NewSubscriptionSourceWithLister(
		func(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
			return nil, errors.New("stripe unavailable")
		},
		profileStub{profile: &report.UserProfile{StripeCustomerID: "cus_1", Subscribed: stored}},
	)
	cats, err = stripeDown.GetSubscribedCategories(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, stored, cats)

	disabled := NewStripeSubscriptionSource("", profileStub{profile: &report.UserProfile{StripeCustomerID: "cus_1", Subscribed: stored}})
	cats, err = disabled.GetSubscribedCategories(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, stored, cats)
}

func TestGetSubscribedCategories_ProfileError(t *testing.T) {
	src := NewStripeSubscriptionSource("", profileStub{err: report.ErrNotFound})

	_, err := src.GetSubscribedCategories(context.Background(), "u1")
	assert.ErrorIs(t, err, report.ErrNotFound)
}
