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

package token

import (
	"time"

	"deskflow/api/dto"
	"deskflow/api/model"
	"deskflow/pkg/dferrors"

	"github.com/golang-jwt/jwt/v5"
)

// Two token families share one verification path. The "typ" claim is
// the discriminant: a user token carries the LocalPeer it was bound to
// at login, a management token carries only subject and permission.
// They are not interchangeable; each endpoint family verifies its own
// kind and rejects the other as invalid.
type Kind string

const (
	KindUser   Kind = "user"
	KindManage Kind = "manage"
)

// Fixed validity windows, one constant per token class.
const (
	UserTokenValidity   = 30 * 24 * time.Hour
	ManageTokenValidity = 7 * 24 * time.Hour
)

const signingMethod = "HS512"

// Claims is the signed session payload. Tokens are stateless and
// self-contained; expiry is the only termination mechanism, there is
// no revocation list.
type Claims struct {
	jwt.RegisteredClaims
	Kind      Kind             `json:"typ"`
	Perm      model.Permission `json:"perm"`
	LocalPeer *dto.LocalPeer   `json:"local_peer,omitempty"`
}

// Username returns the account the token authenticates.
func (c *Claims) Username() string {
	return c.Issuer
}

// Codec signs and verifies session tokens with one symmetric secret.
// The secret is injected at startup, never package state.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// IssueUser builds a 30-day user token bound to the device that logged
// in. iat = nbf = now.
func (c *Codec) IssueUser(username string, lp dto.LocalPeer, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: registered(username, now, UserTokenValidity),
		Kind:             KindUser,
		Perm:             model.PermissionUser,
		LocalPeer:        &lp,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.secret)
}

// IssueManage builds a management token for the admin panel; it works
// for either role because the panel itself has a dual-role login.
func (c *Codec) IssueManage(username string, perm model.Permission, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: registered(username, now, ManageTokenValidity),
		Kind:             KindManage,
		Perm:             perm,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.secret)
}

// Verify checks signature and validity window and returns the claims.
// Any structural, signature or temporal failure comes back as the one
// undifferentiated dferrors.ErrInvalidToken so the caller cannot be
// used as an oracle.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{signingMethod}))
	if err != nil || !tok.Valid {
		return nil, dferrors.ErrInvalidToken
	}
	switch claims.Kind {
	case KindUser:
		if claims.Perm != model.PermissionUser || claims.LocalPeer == nil {
			return nil, dferrors.ErrInvalidToken
		}
	case KindManage:
		if claims.LocalPeer != nil {
			return nil, dferrors.ErrInvalidToken
		}
	default:
		return nil, dferrors.ErrInvalidToken
	}
	return claims, nil
}

// VerifyKind is Verify plus a family check, for endpoints that accept
// exactly one token kind.
func (c *Codec) VerifyKind(tokenString string, kind Kind) (*Claims, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, dferrors.ErrInvalidToken
	}
	return claims, nil
}

func registered(username string, now time.Time, validity time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	}
}
