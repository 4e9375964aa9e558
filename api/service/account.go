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

package service

import (
	"context"
	"errors"
	"time"

	"deskflow/api/dto"
	"deskflow/api/guard"
	"deskflow/api/model"
	"deskflow/api/repository"
	"deskflow/api/token"
	"deskflow/pkg/dferrors"
	"deskflow/pkg/log"

	"gorm.io/gorm"
)

// AccountService orchestrates the permission guard and the account
// store for every use case. Handlers never touch the repositories
// directly.
type AccountService interface {
	// Login authenticates against the User-permission row and issues
	// a user token bound to the device that logged in.
	Login(ctx context.Context, username, password string, lp dto.LocalPeer) (string, *model.User, error)

	// ManageLogin authenticates against the caller-supplied role and
	// issues a management token.
	ManageLogin(ctx context.Context, username, password string, perm model.Permission) (string, error)

	// CurrentUser cross-checks the request LocalPeer against the one
	// bound into the token and returns the token's username.
	CurrentUser(claims *token.Claims, lp dto.LocalPeer) (string, error)

	// ChangePassword works for either token family; the old password
	// is matched in a single conditional update.
	ChangePassword(ctx context.Context, claims *token.Claims, oldPassword, newPassword string) error

	// Admin-only account management.
	ListUsers(ctx context.Context, claims *token.Claims) ([]dto.UserVo, error)
	CreateUser(ctx context.Context, claims *token.Claims, user *model.User) error
	DeleteUser(ctx context.Context, claims *token.Claims, username string, perm model.Permission) error
	UpdateUser(ctx context.Context, claims *token.Claims, username string, perm model.Permission, disabled bool) error

	// Address book; always the token owner's book, no way to address
	// another account's.
	GetAddressBook(ctx context.Context, claims *token.Claims) (*model.AddressBook, error)
	UpdateAddressBook(ctx context.Context, claims *token.Claims, tags []string, peers []model.Peer) error
}

var _ AccountService = (*accountServiceImpl)(nil)

type accountServiceImpl struct {
	users  repository.UserRepository
	books  repository.AddressBookRepository
	codec  *token.Codec
	logger *log.Logger
}

func NewAccountService(db *gorm.DB, codec *token.Codec) AccountService {
	return &accountServiceImpl{
		users:  repository.NewUserRepository(db),
		books:  repository.NewAddressBookRepository(db),
		codec:  codec,
		logger: log.NewLogger(log.Loglevel, "account-service"),
	}
}

func (s *accountServiceImpl) Login(ctx context.Context, username, password string, lp dto.LocalPeer) (string, *model.User, error) {
	user, err := s.users.Authenticate(ctx, username, password, model.PermissionUser)
	if err != nil {
		if errors.Is(err, dferrors.ErrNotFound) {
			return "", nil, dferrors.ErrAuthenticationFailed
		}
		s.logger.Warningf("login: authenticate %q failed: %v", username, err)
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, dferrors.ErrAccountDisabled
	}

	accessToken, err := s.codec.IssueUser(user.Username, lp, time.Now())
	if err != nil {
		s.logger.Errorf("login: issue token for %q failed: %v", username, err)
		return "", nil, err
	}
	return accessToken, user, nil
}

func (s *accountServiceImpl) ManageLogin(ctx context.Context, username, password string, perm model.Permission) (string, error) {
	user, err := s.users.Authenticate(ctx, username, password, perm)
	if err != nil {
		if errors.Is(err, dferrors.ErrNotFound) {
			return "", dferrors.ErrAuthenticationFailed
		}
		s.logger.Warningf("manage login: authenticate %q failed: %v", username, err)
		return "", err
	}

	accessToken, err := s.codec.IssueManage(user.Username, user.Perm, time.Now())
	if err != nil {
		s.logger.Errorf("manage login: issue token for %q failed: %v", username, err)
		return "", err
	}
	return accessToken, nil
}

func (s *accountServiceImpl) CurrentUser(claims *token.Claims, lp dto.LocalPeer) (string, error) {
	if err := guard.Check(claims, model.PermissionUser, &lp); err != nil {
		return "", err
	}
	return claims.Username(), nil
}

func (s *accountServiceImpl) ChangePassword(ctx context.Context, claims *token.Claims, oldPassword, newPassword string) error {
	err := s.users.UpdatePassword(ctx, claims.Username(), claims.Perm, oldPassword, newPassword)
	if err != nil && !errors.Is(err, dferrors.ErrNotFound) {
		s.logger.Warningf("change password for %q failed: %v", claims.Username(), err)
	}
	return err
}

func (s *accountServiceImpl) ListUsers(ctx context.Context, claims *token.Claims) ([]dto.UserVo, error) {
	if err := guard.Check(claims, model.PermissionAdmin, nil); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Warningf("list users failed: %v", err)
		return nil, err
	}
	vos := make([]dto.UserVo, 0, len(users))
	for _, u := range users {
		vos = append(vos, dto.UserVo{Username: u.Username, Perm: u.Perm, Disabled: u.Disabled})
	}
	return vos, nil
}

func (s *accountServiceImpl) CreateUser(ctx context.Context, claims *token.Claims, user *model.User) error {
	if err := guard.Check(claims, model.PermissionAdmin, nil); err != nil {
		return err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, dferrors.ErrDuplicateAccount) {
			s.logger.Warningf("create user %q failed: %v", user.Username, err)
		}
		return err
	}
	return nil
}

func (s *accountServiceImpl) DeleteUser(ctx context.Context, claims *token.Claims, username string, perm model.Permission) error {
	if err := guard.Check(claims, model.PermissionAdmin, nil); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, username, perm); err != nil {
		if !errors.Is(err, dferrors.ErrNotFound) {
			s.logger.Warningf("delete user %q failed: %v", username, err)
		}
		return err
	}
	return nil
}

func (s *accountServiceImpl) UpdateUser(ctx context.Context, claims *token.Claims, username string, perm model.Permission, disabled bool) error {
	if err := guard.Check(claims, model.PermissionAdmin, nil); err != nil {
		return err
	}
	if err := s.users.SetDisabled(ctx, username, perm, disabled); err != nil {
		if !errors.Is(err, dferrors.ErrNotFound) {
			s.logger.Warningf("update user %q failed: %v", username, err)
		}
		return err
	}
	return nil
}
