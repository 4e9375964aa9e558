package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"deskflow/api/database"
	"deskflow/api/dto"
	"deskflow/api/model"
	"deskflow/api/repository"
	"deskflow/api/token"
	"deskflow/pkg/dferrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (AccountService, repository.UserRepository, *token.Codec) {
	t.Helper()
	db, err := database.Open(database.DriverSqlite, filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	codec := token.NewCodec([]byte("test secret"))
	return NewAccountService(db, codec), repository.NewUserRepository(db), codec
}

func peer(id, u string) dto.LocalPeer {
	return dto.LocalPeer{ID: id, UUID: dto.B64UUID(uuid.MustParse(u))}
}

const (
	uuidA = "a68da0a1-2fdb-4045-b50c-3b1bfbbf51c2"
	uuidB = "7a25e3a5-d98f-4a9c-b0e3-0a7f6b9c8d11"
)

func adminClaims() *token.Claims {
	return &token.Claims{Kind: token.KindManage, Perm: model.PermissionAdmin}
}

func userClaims(username string, lp *dto.LocalPeer) *token.Claims {
	c := &token.Claims{Kind: token.KindUser, Perm: model.PermissionUser, LocalPeer: lp}
	c.Issuer = username
	return c
}

func TestLogin(t *testing.T) {
	svc, users, codec := newTestService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "alice", Password: "pw1", Perm: model.PermissionUser}))

	lp := peer("123456789", uuidA)
	tok, user, err := svc.Login(ctx, "alice", "pw1", lp)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	claims, err := codec.VerifyKind(tok, token.KindUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	require.NotNil(t, claims.LocalPeer)
	assert.Equal(t, lp, *claims.LocalPeer)
}

func TestLoginFailures(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "alice", Password: "pw1", Perm: model.PermissionUser}))
	require.NoError(t, users.Create(ctx, &model.User{Username: "off", Password: "pw", Perm: model.PermissionUser, Disabled: true}))

	lp := peer("1", uuidA)

	_, _, err := svc.Login(ctx, "alice", "wrong", lp)
	assert.ErrorIs(t, err, dferrors.ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody", "pw1", lp)
	assert.ErrorIs(t, err, dferrors.ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "off", "pw", lp)
	assert.ErrorIs(t, err, dferrors.ErrAccountDisabled)
}

func TestCurrentUserLocalPeerMismatch(t *testing.T) {
	svc, users, codec := newTestService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "alice", Password: "pw1", Perm: model.PermissionUser}))

	tok, _, err := svc.Login(ctx, "alice", "pw1", peer("1", uuidA))
	require.NoError(t, err)
	claims, err := codec.VerifyKind(tok, token.KindUser)
	require.NoError(t, err)

	// same device passes
	name, err := svc.CurrentUser(claims, peer("1", uuidA))
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	// different device is denied even with a valid token
	_, err = svc.CurrentUser(claims, peer("1", uuidB))
	assert.ErrorIs(t, err, dferrors.ErrPermissionDenied)
}

func TestManageLogin(t *testing.T) {
	svc, users, codec := newTestService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "admin", Password: "admin", Perm: model.PermissionAdmin}))

	tok, err := svc.ManageLogin(ctx, "admin", "admin", model.PermissionAdmin)
	require.NoError(t, err)

	claims, err := codec.VerifyKind(tok, token.KindManage)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionAdmin, claims.Perm)
	assert.Equal(t, "admin", claims.Username())

	_, err = svc.ManageLogin(ctx, "admin", "wrong", model.PermissionAdmin)
	assert.ErrorIs(t, err, dferrors.ErrAuthenticationFailed)
}

func TestChangePasswordOnce(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "bob", Password: "old", Perm: model.PermissionUser}))
	claims := userClaims("bob", nil)

	require.NoError(t, svc.ChangePassword(ctx, claims, "old", "new"))
	assert.ErrorIs(t, svc.ChangePassword(ctx, claims, "old", "newer"), dferrors.ErrNotFound)
}

func TestAdminAccountLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	admin := adminClaims()

	require.NoError(t, svc.CreateUser(ctx, admin, &model.User{Username: "bob", Password: "pw", Perm: model.PermissionUser}))

	list, err := svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Username)
	assert.False(t, list[0].Disabled)

	require.NoError(t, svc.UpdateUser(ctx, admin, "bob", model.PermissionUser, true))
	list, err = svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.True(t, list[0].Disabled)

	require.NoError(t, svc.DeleteUser(ctx, admin, "bob", model.PermissionUser))

	// the address book dies with the account
	_, err = svc.GetAddressBook(ctx, userClaims("bob", nil))
	assert.ErrorIs(t, err, dferrors.ErrNotFound)
}

func TestAdminOpsRequireAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	claims := &token.Claims{Kind: token.KindManage, Perm: model.PermissionUser}

	_, err := svc.ListUsers(ctx, claims)
	assert.ErrorIs(t, err, dferrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CreateUser(ctx, claims, &model.User{Username: "x", Perm: model.PermissionUser}), dferrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteUser(ctx, claims, "x", model.PermissionUser), dferrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.UpdateUser(ctx, claims, "x", model.PermissionUser, true), dferrors.ErrPermissionDenied)
}

func TestAddressBookOwnership(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "alice", Password: "pw", Perm: model.PermissionUser}))

	claims := userClaims("alice", nil)
	tags := []string{"work"}
	peers := []model.Peer{{ID: "1", Tags: []string{"work"}}}

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, svc.UpdateAddressBook(ctx, claims, tags, peers))

	book, err := svc.GetAddressBook(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, tags, book.Tags)
	assert.Equal(t, peers, book.Peers)
	assert.True(t, book.UpdatedAt.After(before))

	// an admin-family token cannot touch address books
	err = svc.UpdateAddressBook(ctx, adminClaims(), tags, peers)
	assert.ErrorIs(t, err, dferrors.ErrPermissionDenied)
}
