package supabase

import (
	"fmt"

	"github.com/supabase-community/gotrue-go/types"

	"github.com/ai-studio/backend/internal/apperrors"
	"github.com/ai-studio/backend/internal/session"
)

// Auth adapts the Supabase GoTrue client to the session manager's
// AuthClient interface.
type Auth struct {
	client *Client
}

var _ session.AuthClient = (*Auth)(nil)

func NewAuth(client *Client) *Auth {
	return &Auth{client: client}
}

func (a *Auth) SignUp(email, password string) (*session.Identity, error) {
	resp, err := a.client.Supabase.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: sign up: %v", apperrors.ErrAuth, err)
	}

	return &session.Identity{
		UserID:       resp.ID,
		Email:        email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (a *Auth) SignIn(email, password string) (*session.Identity, error) {
	sess, err := a.client.Supabase.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCredentials, err)
	}

	return &session.Identity{
		UserID:       sess.User.ID,
		Email:        sess.User.Email,
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
	}, nil
}

func (a *Auth) SignOut(accessToken string) error {
	if err := a.client.Supabase.Auth.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}
