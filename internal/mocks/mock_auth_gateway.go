package mocks

import (
	"context"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// MockAuthGateway implements domain.AuthGateway with overridable functions.
type MockAuthGateway struct {
	LoginFunc          func(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	RegisterFunc       func(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, token string) error
	CurrentUserFunc    func(ctx context.Context, token string) (*domain.User, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, reset domain.ResetPassword) error
	ChangePasswordFunc func(ctx context.Context, token string, change domain.ChangePassword) error
}

func (m *MockAuthGateway) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthGateway) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return nil, domain.ErrUpstreamUnavailable
}

func (m *MockAuthGateway) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthGateway) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, token)
	}
	return nil, domain.ErrUnauthenticated
}

func (m *MockAuthGateway) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthGateway) ResetPassword(ctx context.Context, reset domain.ResetPassword) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, reset)
	}
	return nil
}

func (m *MockAuthGateway) ChangePassword(ctx context.Context, token string, change domain.ChangePassword) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, token, change)
	}
	return nil
}
