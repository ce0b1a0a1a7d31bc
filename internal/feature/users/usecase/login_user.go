package usecase

import (
	"context"
	"fmt"

	jwtmw "users_backend/internal/platform/jwt"
)

// LoginUserHandler authenticates a user and issues an access token.
type LoginUserHandler struct {
	auth     Authenticator
	tokens   TokenGenerator
	settings jwtmw.Settings
}

// NewLoginUserHandler は設定済みのトークン設定を受け取りLoginUserHandlerを生成します。
func NewLoginUserHandler(auth Authenticator, tokens TokenGenerator, settings jwtmw.Settings) *LoginUserHandler {
	return &LoginUserHandler{auth: auth, tokens: tokens, settings: settings}
}

// Handle returns domain.ErrInvalidCredentials for any credential problem.
func (h *LoginUserHandler) Handle(ctx context.Context, email, password string) (LoginResponse, error) {
	user, err := h.auth.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResponse{}, err
	}

	token, expiresAt, err := h.tokens.Generate(jwtmw.Subject{
		UserID: user.ID(),
		Name:   user.Name(),
		Email:  user.Email().String(),
		Role:   user.Profile().String(),
	}, h.settings)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return LoginResponse{AccessToken: token, ExpiresAtUTC: expiresAt}, nil
}
