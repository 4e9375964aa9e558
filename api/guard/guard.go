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

package guard

import (
	"deskflow/api/dto"
	"deskflow/api/model"
	"deskflow/api/token"
	"deskflow/pkg/dferrors"
)

// DeniedError carries the user-facing denial reason. It matches
// dferrors.ErrPermissionDenied under errors.Is.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

func (e *DeniedError) Is(target error) bool { return target == dferrors.ErrPermissionDenied }

// Check is the permission decision gating every protected operation.
//
// The LocalPeer cross-check (rule 3) only runs when the request itself
// supplies a LocalPeer. Address-book reads and writes send none, so
// they validate the token's role but never its device binding; only
// the currentUser endpoint performs the full cross-check. That
// asymmetry is externally observable client behavior and is kept as
// is.
func Check(claims *token.Claims, required model.Permission, lp *dto.LocalPeer) error {
	if required == model.PermissionAdmin && claims.Perm != model.PermissionAdmin {
		return &DeniedError{Reason: "权限不足"}
	}
	if required == model.PermissionUser && claims.Perm != model.PermissionUser {
		return &DeniedError{Reason: "用户权限异常，请重新登录"}
	}
	if lp != nil && claims.LocalPeer != nil && *lp != *claims.LocalPeer {
		return &DeniedError{Reason: "用户权限异常，请重新登录"}
	}
	return nil
}
