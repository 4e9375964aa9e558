// Copyright 2025 The Deskflow Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskflow/api/model"
	"deskflow/pkg/dferrors"

	"gorm.io/gorm"
)

// UserRepository is the account store. Every method is atomic with
// respect to concurrent callers on the same (username, perm) key; the
// multi-statement operations run inside a single transaction.
type UserRepository interface {
	// Create inserts the account row and, for User-permission
	// accounts, the empty address-book row in the same transaction.
	Create(ctx context.Context, user *model.User) error

	// Delete removes the account row and, for User-permission
	// accounts, the address-book row in the same transaction.
	Delete(ctx context.Context, username string, perm model.Permission) error

	// Authenticate matches username, password and perm exactly. A
	// miss on any of the three yields dferrors.ErrNotFound; the
	// caller cannot tell a wrong password from an absent account.
	Authenticate(ctx context.Context, username, password string, perm model.Permission) (*model.User, error)

	// UpdatePassword is a single conditional update; ErrNotFound
	// means the old password did not match (or the account is gone,
	// distinguished only in logs).
	UpdatePassword(ctx context.Context, username string, perm model.Permission, oldPassword, newPassword string) error

	// SetDisabled flips the disabled flag.
	SetDisabled(ctx context.Context, username string, perm model.Permission, disabled bool) error

	// List returns every account, password column excluded.
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if user.Perm == model.PermissionUser {
			book := &model.AddressBook{
				Username:  user.Username,
				UpdatedAt: time.Now().UTC(),
				Tags:      []string{},
				Peers:     []model.Peer{},
			}
			if err := tx.Create(book).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

func (r *userRepository) Delete(ctx context.Context, username string, perm model.Permission) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if perm == model.PermissionUser {
			if err := tx.Where("username = ?", username).Delete(&model.AddressBook{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("username = ? AND perm = ?", username, perm).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

func (r *userRepository) Authenticate(ctx context.Context, username, password string, perm model.Permission) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ? AND perm = ?", username, password, perm).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, username string, perm model.Permission, oldPassword, newPassword string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? AND password = ? AND perm = ?", username, oldPassword, perm).
		Update("password", newPassword)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected != 1 {
		return dferrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetDisabled(ctx context.Context, username string, perm model.Permission, disabled bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? AND perm = ?", username, perm).
		Update("disabled", disabled)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dferrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("username", "perm", "disabled").
		Order("username, perm").
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// translate maps gorm errors to the domain taxonomy so nothing
// driver-specific escapes the repository.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return dferrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return dferrors.ErrDuplicateAccount
	case errors.Is(err, dferrors.ErrNotFound), errors.Is(err, dferrors.ErrDuplicateAccount):
		return err
	default:
		return fmt.Errorf("%w: %v", dferrors.ErrStore, err)
	}
}
