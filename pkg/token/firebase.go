package token

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type firebaseVerifier struct {
	client *auth.Client
	log    *zap.Logger
}

// NewFirebaseVerifier builds a Verifier backed by Firebase Authentication.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string, log *zap.Logger) (Verifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &firebaseVerifier{
		client: client,
		log:    log.With(zap.String("component", "token_verifier")),
	}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.log.Debug("Token verification failed", zap.Error(err))
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	// Not every provider account carries an email claim.
	email, _ := tok.Claims["email"].(string)

	return &Identity{
		UserID: tok.UID,
		Email:  email,
	}, nil
}
