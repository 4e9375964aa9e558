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

package model

import (
	"encoding/json"
	"fmt"
)

// Permission is the role discriminator. It is stored as an integer
// and travels on the wire as the strings "Admin" / "User".
type Permission int

const (
	PermissionAdmin Permission = iota
	PermissionUser
)

func (p Permission) String() string {
	switch p {
	case PermissionAdmin:
		return "Admin"
	case PermissionUser:
		return "User"
	default:
		return fmt.Sprintf("Permission(%d)", int(p))
	}
}

func (p Permission) MarshalJSON() ([]byte, error) {
	switch p {
	case PermissionAdmin, PermissionUser:
		return json.Marshal(p.String())
	default:
		return nil, fmt.Errorf("unknown permission %d", int(p))
	}
}

func (p *Permission) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Admin":
		*p = PermissionAdmin
	case "User":
		*p = PermissionUser
	default:
		return fmt.Errorf("unknown permission %q", s)
	}
	return nil
}
