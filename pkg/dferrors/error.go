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

package dferrors

import "errors"

var (
	// ErrAuthenticationFailed covers both a wrong password and an
	// absent account. The two are merged on purpose so that login
	// cannot be used to enumerate usernames.
	ErrAuthenticationFailed = errors.New("username or password incorrect")

	// ErrAccountDisabled is returned when credentials match a row
	// whose disabled flag is set.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrInvalidToken covers malformed, mis-signed, expired and
	// wrong-family tokens without distinguishing them.
	ErrInvalidToken = errors.New("invalid token")

	// ErrPermissionDenied covers both a role mismatch and a
	// LocalPeer mismatch.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is a post-authentication miss: the account or
	// address book a handler asked for does not exist, or a
	// conditional update matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateAccount is a create collision on (username, perm).
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrStore wraps any storage failure that is not one of the
	// cases above. Internal detail stays in the logs.
	ErrStore = errors.New("store failure")
)
