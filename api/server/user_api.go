package server

import (
	"errors"
	"net/http"

	"deskflow/api/dto"
	"deskflow/api/server/middleware"
	"deskflow/pkg/dferrors"

	"github.com/gin-gonic/gin"
)

// 用户登录：仅校验 User 权限行，禁用账号不发放令牌
func (s *Server) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	accessToken, user, err := s.svc.Login(c.Request.Context(), req.Username, req.Password, req.LocalPeer())
	if err != nil {
		switch {
		case errors.Is(err, dferrors.ErrAuthenticationFailed):
			writeError(c, http.StatusOK, "用户名或密码错误")
		case errors.Is(err, dferrors.ErrAccountDisabled):
			writeError(c, http.StatusOK, "该账号已被禁用,请联系管理员")
		default:
			writeError(c, http.StatusOK, "服务器发生错误")
		}
		return
	}

	writeOk(c, dto.LoginResponse{
		AccessToken: accessToken,
		User:        dto.LoginUser{Name: user.Username},
	})
}

// 登出在服务端是空操作；令牌只能等它自己过期
func (s *Server) logout(c *gin.Context) {
	writeOk(c, nil)
}

func (s *Server) currentUser(c *gin.Context) {
	var lp dto.LocalPeer
	if err := c.ShouldBindJSON(&lp); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	name, err := s.svc.CurrentUser(middleware.Claims(c), lp)
	if err != nil {
		writeError(c, http.StatusUnauthorized, err.Error())
		return
	}

	writeOk(c, dto.LoginUser{Name: name})
}

func (s *Server) getAddressBook(c *gin.Context) {
	book, err := s.svc.GetAddressBook(c.Request.Context(), middleware.Claims(c))
	if err != nil {
		switch {
		case errors.Is(err, dferrors.ErrPermissionDenied):
			writeError(c, http.StatusOK, err.Error())
		case errors.Is(err, dferrors.ErrNotFound):
			writeError(c, http.StatusOK, "未找到地址簿信息，请联系管理员")
		default:
			writeError(c, http.StatusOK, "获取地址簿失败，请联系管理员")
		}
		return
	}

	writeOk(c, dto.AddressBookData{Data: *book})
}

func (s *Server) updateAddressBook(c *gin.Context) {
	var payload dto.AddressBookData
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "请求格式错误")
		return
	}

	err := s.svc.UpdateAddressBook(c.Request.Context(), middleware.Claims(c), payload.Data.Tags, payload.Data.Peers)
	if err != nil {
		if errors.Is(err, dferrors.ErrPermissionDenied) {
			writeError(c, http.StatusOK, err.Error())
		} else {
			writeError(c, http.StatusOK, "更新失败，请重试")
		}
		return
	}

	writeOk(c, nil)
}
