package dto

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPeerWireFormat(t *testing.T) {
	id := uuid.MustParse("a68da0a1-2fdb-4045-b50c-3b1bfbbf51c2")
	lp := LocalPeer{ID: "123456789", UUID: B64UUID(id)}

	raw, err := json.Marshal(lp)
	require.NoError(t, err)

	// the uuid travels as base64 of its canonical string form
	var wire struct {
		ID   string `json:"id"`
		UUID string `json:"uuid"`
	}
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, "123456789", wire.ID)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(id.String())), wire.UUID)

	var back LocalPeer
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, lp, back)
}

func TestLocalPeerRejectsBadUUIDs(t *testing.T) {
	tests := []struct {
		name string
		uuid string
	}{
		{"not base64", `"%%%%"`},
		{"base64 of non-uuid text", `"` + base64.StdEncoding.EncodeToString([]byte("hello")) + `"`},
		{"base64 of invalid utf-8", `"` + base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}) + `"`},
		{"number instead of string", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lp LocalPeer
			err := json.Unmarshal([]byte(`{"id":"1","uuid":`+tt.uuid+`}`), &lp)
			assert.Error(t, err)
		})
	}
}

func TestLocalPeerEquality(t *testing.T) {
	a := LocalPeer{ID: "1", UUID: B64UUID(uuid.MustParse("a68da0a1-2fdb-4045-b50c-3b1bfbbf51c2"))}
	b := LocalPeer{ID: "1", UUID: B64UUID(uuid.MustParse("a68da0a1-2fdb-4045-b50c-3b1bfbbf51c2"))}
	c := LocalPeer{ID: "1", UUID: B64UUID(uuid.MustParse("7a25e3a5-d98f-4a9c-b0e3-0a7f6b9c8d11"))}

	assert.True(t, a == b)
	assert.False(t, a == c)
}
