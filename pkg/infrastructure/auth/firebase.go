package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuthenticator verifies Firebase ID tokens issued to the web app.
type FirebaseAuthenticator struct {
	client tokenVerifier
}

var _ shared.Authenticator = (*FirebaseAuthenticator)(nil)

func NewFirebaseAuthenticator(ctx context.Context, app *firebase.App) (*FirebaseAuthenticator, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}
	return &FirebaseAuthenticator{client: client}, nil
}

// VerifyToken returns the caller's uid. Every failure is report.ErrUnauthorized.
func (a *FirebaseAuthenticator) VerifyToken(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", report.ErrUnauthorized
	}
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", report.ErrUnauthorized, err)
	}
	if token == nil || token.UID == "" {
		return "", fmt.Errorf("%w: no user id in token", report.ErrUnauthorized)
	}
	return token.UID, nil
}
