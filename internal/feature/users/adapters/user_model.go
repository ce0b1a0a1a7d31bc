package adapters

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/valueobject"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:150;not null;index"`
	Email        string `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	Profile      string `gorm:"size:20;not null;default:User"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain aggregate.
// Stored values are re-checked so a corrupted row never becomes a User.
func (m *UserModel) ToEntity() (*entity.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("stored user id %q: %w", m.ID, err)
	}
	email, err := valueobject.NewEmail(m.Email)
	if err != nil {
		return nil, fmt.Errorf("stored email for user %s: %w", m.ID, err)
	}
	hash, err := valueobject.NewPasswordHash(m.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("stored password hash for user %s: %w", m.ID, err)
	}
	return entity.RehydrateUser(id, m.Name, email, hash, valueobject.ParseProfile(m.Profile)), nil
}

// UserModelFromEntity converts a domain aggregate to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID().String(),
		Name:         u.Name(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash().String(),
		Profile:      u.Profile().String(),
	}
}
