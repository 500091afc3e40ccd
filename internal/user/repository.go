// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/McLeroy/loops-api/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user data operations. Email and phone
// lookups are exact-match, not case-normalized; the unique indexes are the
// authoritative duplicate enforcement boundary.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByEmail(ctx context.Context, email string) (int64, error)
	CountByPhone(ctx context.Context, phone string) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// Create inserts a new user record along with its profile sub-records.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isDuplicateKey(err) {
			if strings.Contains(err.Error(), "phone") {
				return common.ErrConflict.WithDetails("Phone number already in use.")
			}
			return common.ErrConflict.WithDetails("Email address already in use.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) findOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).
		Preload("DriverProfile").
		Preload("RiderProfile").
		Where(query, arg).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Account does not exist.")
		}
		return nil, err
	}
	return &userModel, nil
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone retrieves a user by their phone number.
func (r *gormRepository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID retrieves a user by their ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// Update persists changes to an existing user record and its profiles.
func (r *gormRepository) Update(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(user).Error
	if err != nil {
		if isDuplicateKey(err) {
			return common.ErrConflict.WithDetails("Update failed due to a conflict.")
		}
		return err
	}
	return nil
}

// Delete removes a user record.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{}).Error
}

// CountByEmail counts user records with the exact email.
func (r *gormRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

// CountByPhone counts user records with the exact phone number.
func (r *gormRepository) CountByPhone(ctx context.Context, phone string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("phone = ?", phone).Count(&count).Error
	return count, err
}
