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

package middleware

import (
	"net/http"
	"strings"

	"deskflow/api/dto"
	"deskflow/api/token"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is where the verified claims land in the gin context.
const ClaimsKey = "claims"

// Auth rejects the request before any handler logic runs unless it
// carries a valid bearer token of the given kind. The scheme match is
// case-insensitive. A missing header and an invalid token get the
// same 401 envelope shape.
func Auth(codec *token.Codec, kind token.Kind) gin.HandlerFunc {
	return auth(codec, kind, false)
}

// AuthAny accepts a valid token of either family; the change-password
// endpoint serves both the client and the admin panel.
func AuthAny(codec *token.Codec) gin.HandlerFunc {
	return auth(codec, "", true)
}

func auth(codec *token.Codec, kind token.Kind, any bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Errorf("输入token无效，请重新登录"))
			return
		}

		var (
			claims *token.Claims
			err    error
		)
		if any {
			claims, err = codec.Verify(raw)
		} else {
			claims, err = codec.VerifyKind(raw, kind)
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Errorf("token格式错误，请重新登录"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// Claims pulls the verified claims a handler runs under.
func Claims(c *gin.Context) *token.Claims {
	v, _ := c.Get(ClaimsKey)
	claims, _ := v.(*token.Claims)
	return claims
}

func bearer(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
		return "", false
	}
	return fields[1], true
}
