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

package dto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// LocalPeer identifies the device a user token is bound to. It is an
// equality-comparable scoping value, never a storage key.
//
// Wire quirk kept for client compatibility: uuid travels as the base64
// encoding of the UUID's canonical string form, not of its raw bytes.
type LocalPeer struct {
	ID   string  `json:"id"`
	UUID B64UUID `json:"uuid"`
}

// B64UUID is a uuid.UUID whose JSON form is base64(uuid-string).
type B64UUID uuid.UUID

func (u B64UUID) MarshalJSON() ([]byte, error) {
	s := base64.StdEncoding.EncodeToString([]byte(uuid.UUID(u).String()))
	return json.Marshal(s)
}

func (u *B64UUID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("uuid: %w", err)
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("uuid: %w", err)
	}
	*u = B64UUID(id)
	return nil
}

func (u B64UUID) String() string {
	return uuid.UUID(u).String()
}
