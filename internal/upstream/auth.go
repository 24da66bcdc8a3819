package upstream

import (
	"context"
	"errors"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// AuthGateway implements domain.AuthGateway against the backend's /auth API.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway creates the auth gateway.
func NewAuthGateway(client *Client) domain.AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone,omitempty"`
}

type authPayload struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *domain.User `json:"user"`
}

type mePayload struct {
	User *domain.User `json:"user"`
}

// Login implements domain.AuthGateway. A 401 from the backend means the
// credentials were rejected, not that our session is stale.
func (g *AuthGateway) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var payload authPayload
	err := g.client.post(ctx, "/auth/login", loginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	}, "", &payload)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return toAuthResult(&payload)
}

// Register implements domain.AuthGateway.
func (g *AuthGateway) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	var payload authPayload
	err := g.client.post(ctx, "/auth/register", registerRequest{
		Name:                 reg.Name,
		Email:                reg.Email,
		Password:             reg.Password,
		PasswordConfirmation: reg.PasswordConfirmation,
		Phone:                reg.Phone,
	}, "", &payload)
	if err != nil {
		return nil, err
	}
	return toAuthResult(&payload)
}

// Logout implements domain.AuthGateway.
func (g *AuthGateway) Logout(ctx context.Context, token string) error {
	return g.client.post(ctx, "/auth/logout", nil, token, nil)
}

// CurrentUser implements domain.AuthGateway.
func (g *AuthGateway) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var payload mePayload
	if err := g.client.get(ctx, "/auth/me", nil, token, &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, errors.New("backend returned an empty profile")
	}
	return payload.User, nil
}

// ForgotPassword implements domain.AuthGateway.
func (g *AuthGateway) ForgotPassword(ctx context.Context, email string) error {
	return g.client.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, "", nil)
}

// ResetPassword implements domain.AuthGateway.
func (g *AuthGateway) ResetPassword(ctx context.Context, reset domain.ResetPassword) error {
	return g.client.post(ctx, "/auth/reset-password", map[string]string{
		"email":                 reset.Email,
		"token":                 reset.Token,
		"password":              reset.Password,
		"password_confirmation": reset.PasswordConfirmation,
	}, "", nil)
}

// ChangePassword implements domain.AuthGateway.
func (g *AuthGateway) ChangePassword(ctx context.Context, token string, change domain.ChangePassword) error {
	return g.client.post(ctx, "/profile/change-password", map[string]string{
		"current_password":      change.CurrentPassword,
		"password":              change.Password,
		"password_confirmation": change.PasswordConfirmation,
	}, token, nil)
}

func toAuthResult(payload *authPayload) (*domain.AuthResult, error) {
	if payload.AccessToken == "" || payload.User == nil {
		return nil, errors.New("backend returned an incomplete auth response")
	}
	return &domain.AuthResult{
		Token: payload.AccessToken,
		User:  payload.User,
	}, nil
}
