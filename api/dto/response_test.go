package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseFlattensData(t *testing.T) {
	raw, err := json.Marshal(Ok(LoginResponse{
		AccessToken: "tok",
		User:        LoginUser{Name: "alice"},
	}))
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &out))

	// data fields sit next to error, not under a wrapper key
	assert.Contains(t, out, "access_token")
	assert.Contains(t, out, "user")
	assert.Equal(t, "null", string(out["error"]))
}

func TestResponseErrorOnly(t *testing.T) {
	raw, err := json.Marshal(Errorf("用户名或密码错误"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"error":"用户名或密码错误"}`, string(raw))
}

func TestResponseEmptyOk(t *testing.T) {
	raw, err := json.Marshal(Ok(nil))
	require.NoError(t, err)

	assert.JSONEq(t, `{"error":null}`, string(raw))
}
