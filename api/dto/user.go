package dto

import "deskflow/api/model"

// LoginRequest is the user-endpoint login body; the LocalPeer fields
// arrive flattened next to the credentials.
type LoginRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ID       string  `json:"id"`
	UUID     B64UUID `json:"uuid"`
}

func (r *LoginRequest) LocalPeer() LocalPeer {
	return LocalPeer{ID: r.ID, UUID: r.UUID}
}

// LoginUser is the user object echoed back by the client-facing login
// and currentUser endpoints.
type LoginUser struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// ManageLoginRequest carries the role the admin panel logs in under;
// the panel itself has a dual-role login.
type ManageLoginRequest struct {
	Username string           `json:"username"`
	Password string           `json:"password"`
	Perm     model.Permission `json:"perm"`
}

type ManageLoginResponse struct {
	AccessToken string           `json:"access_token"`
	Perm        model.Permission `json:"perm"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateUserRequest struct {
	Username string           `json:"username"`
	Password string           `json:"password"`
	Perm     model.Permission `json:"perm"`
	Disabled bool             `json:"disabled"`
}

type DeleteUserRequest struct {
	Username string           `json:"username"`
	Perm     model.Permission `json:"perm"`
}

type UpdateUserRequest struct {
	Username string           `json:"username"`
	Perm     model.Permission `json:"perm"`
	Disabled bool             `json:"disabled"`
}

// UserVo is the external projection of an account; the password column
// never leaves the store for this view.
type UserVo struct {
	Username string           `json:"username"`
	Perm     model.Permission `json:"perm"`
	Disabled bool             `json:"disabled"`
}

type UsersResponse struct {
	Users []UserVo `json:"users"`
}
