package token

import (
	"testing"
	"time"

	"deskflow/api/dto"
	"deskflow/api/model"
	"deskflow/pkg/dferrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocalPeer() dto.LocalPeer {
	return dto.LocalPeer{
		ID:   "123456789",
		UUID: dto.B64UUID(uuid.MustParse("a68da0a1-2fdb-4045-b50c-3b1bfbbf51c2")),
	}
}

func TestUserTokenRoundTrip(t *testing.T) {
	codec := NewCodec([]byte("test secret"))
	lp := testLocalPeer()

	tok, err := codec.IssueUser("alice", lp, time.Now())
	require.NoError(t, err)

	claims, err := codec.VerifyKind(tok, KindUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, model.PermissionUser, claims.Perm)
	require.NotNil(t, claims.LocalPeer)
	assert.Equal(t, lp, *claims.LocalPeer)
}

func TestManageTokenRoundTrip(t *testing.T) {
	codec := NewCodec([]byte("test secret"))

	tok, err := codec.IssueManage("admin", model.PermissionAdmin, time.Now())
	require.NoError(t, err)

	claims, err := codec.VerifyKind(tok, KindManage)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username())
	assert.Equal(t, model.PermissionAdmin, claims.Perm)
	assert.Nil(t, claims.LocalPeer)
}

func TestWrongFamilyRejected(t *testing.T) {
	codec := NewCodec([]byte("test secret"))

	userTok, err := codec.IssueUser("alice", testLocalPeer(), time.Now())
	require.NoError(t, err)
	manageTok, err := codec.IssueManage("alice", model.PermissionUser, time.Now())
	require.NoError(t, err)

	_, err = codec.VerifyKind(userTok, KindManage)
	assert.ErrorIs(t, err, dferrors.ErrInvalidToken)
	_, err = codec.VerifyKind(manageTok, KindUser)
	assert.ErrorIs(t, err, dferrors.ErrInvalidToken)
}

func TestDistinctSecretsReject(t *testing.T) {
	a := NewCodec([]byte("secret a"))
	b := NewCodec([]byte("secret b"))

	tok, err := a.IssueManage("admin", model.PermissionAdmin, time.Now())
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, dferrors.ErrInvalidToken)
}

func TestMalformedRejected(t *testing.T) {
	codec := NewCodec([]byte("test secret"))

	for _, tok := range []string{"", "not.a.jwt", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, dferrors.ErrInvalidToken, "token %q", tok)
	}
}

func TestTamperedSignatureRejected(t *testing.T) {
	codec := NewCodec([]byte("test secret"))

	tok, err := codec.IssueUser("alice", testLocalPeer(), time.Now())
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, dferrors.ErrInvalidToken)
}

func TestExpiryBoundary(t *testing.T) {
	codec := NewCodec([]byte("test secret"))
	lp := testLocalPeer()

	// expires one second from now: still inside the window
	tok, err := codec.IssueUser("alice", lp, time.Now().Add(-UserTokenValidity+time.Second))
	require.NoError(t, err)
	_, err = codec.Verify(tok)
	assert.NoError(t, err)

	// expired one second ago: always rejected
	tok, err = codec.IssueUser("alice", lp, time.Now().Add(-UserTokenValidity-time.Second))
	require.NoError(t, err)
	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, dferrors.ErrInvalidToken)
}

func TestNotBeforeEnforced(t *testing.T) {
	codec := NewCodec([]byte("test secret"))

	tok, err := codec.IssueManage("admin", model.PermissionAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, dferrors.ErrInvalidToken)
}
