package server

import (
	"errors"
	"net/http"

	"deskflow/api/dto"
	"deskflow/api/model"
	"deskflow/api/server/middleware"
	"deskflow/pkg/dferrors"

	"github.com/gin-gonic/gin"
)

// 管理面板登录：面板自身支持以 Admin 或 User 两种身份登录
func (s *Server) manageLogin(c *gin.Context) {
	var req dto.ManageLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	accessToken, err := s.svc.ManageLogin(c.Request.Context(), req.Username, req.Password, req.Perm)
	if err != nil {
		if errors.Is(err, dferrors.ErrAuthenticationFailed) {
			writeError(c, http.StatusOK, "用户名或密码错误")
		} else {
			writeError(c, http.StatusOK, "登录时发生错误，请重试或联系管理员")
		}
		return
	}

	writeOk(c, dto.ManageLoginResponse{AccessToken: accessToken, Perm: req.Perm})
}

func (s *Server) changePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	err := s.svc.ChangePassword(c.Request.Context(), middleware.Claims(c), req.OldPassword, req.NewPassword)
	if err != nil {
		// ErrNotFound 这里表示旧密码不匹配；账号不存在只在日志里区分
		if errors.Is(err, dferrors.ErrNotFound) {
			writeError(c, http.StatusOK, "旧密码错误")
		} else {
			writeError(c, http.StatusOK, "修改密码时发生错误，请重试或联系管理员")
		}
		return
	}

	writeOk(c, nil)
}

func (s *Server) getUsers(c *gin.Context) {
	users, err := s.svc.ListUsers(c.Request.Context(), middleware.Claims(c))
	if err != nil {
		if errors.Is(err, dferrors.ErrPermissionDenied) {
			writeError(c, http.StatusUnauthorized, err.Error())
		} else {
			writeError(c, http.StatusInternalServerError, "获取用户列表时出现错误，请重试或联系管理员")
		}
		return
	}

	writeOk(c, dto.UsersResponse{Users: users})
}

func (s *Server) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	user := &model.User{
		Username: req.Username,
		Password: req.Password,
		Perm:     req.Perm,
		Disabled: req.Disabled,
	}
	err := s.svc.CreateUser(c.Request.Context(), middleware.Claims(c), user)
	if err != nil {
		switch {
		case errors.Is(err, dferrors.ErrPermissionDenied):
			writeError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, dferrors.ErrDuplicateAccount):
			writeError(c, http.StatusBadRequest, "已存在相同用户名与权限用户")
		default:
			writeError(c, http.StatusInternalServerError, "创建用户时发生错误，请重试或联系管理员")
		}
		return
	}

	writeOk(c, nil)
}

func (s *Server) deleteUser(c *gin.Context) {
	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	err := s.svc.DeleteUser(c.Request.Context(), middleware.Claims(c), req.Username, req.Perm)
	if err != nil {
		switch {
		case errors.Is(err, dferrors.ErrPermissionDenied):
			writeError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, dferrors.ErrNotFound):
			writeError(c, http.StatusBadRequest, "未找到指定用户")
		default:
			writeError(c, http.StatusInternalServerError, "删除用户时发生错误，请重试或联系管理员")
		}
		return
	}

	writeOk(c, nil)
}

func (s *Server) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	err := s.svc.UpdateUser(c.Request.Context(), middleware.Claims(c), req.Username, req.Perm, req.Disabled)
	if err != nil {
		switch {
		case errors.Is(err, dferrors.ErrPermissionDenied):
			writeError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, dferrors.ErrNotFound):
			writeError(c, http.StatusBadRequest, "未找到指定用户")
		default:
			writeError(c, http.StatusInternalServerError, "更新用户时发生错误，请重试或联系管理员")
		}
		return
	}

	writeOk(c, nil)
}
