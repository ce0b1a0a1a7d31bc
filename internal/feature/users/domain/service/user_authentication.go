package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/valueobject"
)

// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーパスワード
const dummyPassword = "Dummy#Passw0rd"

// UserAuthenticationService verifies login credentials.
type UserAuthenticationService struct {
	users  repository.UserRepository
	hasher PasswordHasher

	// dummyHash is produced by hasher and shares its work factor.
	dummyHash valueobject.PasswordHash
}

// NewUserAuthenticationService はUserAuthenticationServiceの新しいインスタンスを生成します。
// 未登録メール時の比較に使うダミーハッシュを注入されたhasherで一度だけ生成します。
func NewUserAuthenticationService(users repository.UserRepository, hasher PasswordHasher) *UserAuthenticationService {
	s := &UserAuthenticationService{users: users, hasher: hasher}
	pw, err := valueobject.NewPlaintextPassword(dummyPassword)
	if err == nil {
		s.dummyHash, err = hasher.Hash(pw)
	}
	if err != nil {
		slog.Warn("failed to prepare dummy password hash", "error", err)
	}
	return s
}

// Authenticate returns the user owning email when password matches its stored hash.
// Malformed input, an unknown email and a wrong password all fail with
// domain.ErrInvalidCredentials. Repository failures are returned wrapped.
func (s *UserAuthenticationService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	passwordVO, err := valueobject.NewPlaintextPassword(password)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailVO)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// 存在しないユーザーでもbcrypt比較を実行して応答時間を揃える
			s.hasher.Verify(passwordVO, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(passwordVO, user.PasswordHash()) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
