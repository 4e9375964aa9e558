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

package server

import (
	"context"
	"errors"
	"net/http"

	"deskflow/api/database"
	"deskflow/api/dto"
	"deskflow/api/model"
	"deskflow/api/repository"
	"deskflow/api/server/middleware"
	"deskflow/api/service"
	"deskflow/api/token"
	"deskflow/internal/config"
	"deskflow/pkg/dferrors"
	"deskflow/pkg/log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server is the api server: user endpoints under /api, management
// endpoints under /manage, plus the static/download/server-address
// shell around them.
type Server struct {
	*gin.Engine
	logger *log.Logger
	listen string
	codec  *token.Codec
	svc    service.AccountService
}

func New(cfg *config.Config) (*Server, error) {
	logger := log.NewLogger(log.Loglevel, "api-server")

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Errorf("open database failed: %v", err)
		return nil, err
	}
	seedAccounts(db, logger)

	codec := token.NewCodec([]byte(cfg.TokenSecret))

	s := &Server{
		logger: logger,
		listen: cfg.Listen,
		codec:  codec,
		svc:    service.NewAccountService(db, codec),
	}

	s.Engine = gin.New()
	s.Use(gin.Recovery(), metricsMiddleware())

	s.userApi()
	s.manageApi()
	if err := s.staticRoutes(cfg); err != nil {
		return nil, err
	}

	return s, nil
}

// Run serves until the listener fails. Each request fails
// independently; nothing in the handlers is fatal to the process.
func (s *Server) Run() error {
	s.logger.Infof("listening on %s", s.listen)
	return s.Engine.Run(s.listen)
}

func (s *Server) userApi() {
	r := s.Engine

	api := r.Group("/api")
	api.POST("/login", s.login)

	authed := r.Group("/api", middleware.Auth(s.codec, token.KindUser))
	{
		authed.POST("/logout", s.logout)
		authed.POST("/currentUser", s.currentUser)
		authed.POST("/ab/get", s.getAddressBook)
		authed.POST("/ab", s.updateAddressBook)
	}
}

func (s *Server) manageApi() {
	r := s.Engine

	r.POST("/manage/login", s.manageLogin)
	r.POST("/manage/change_password", middleware.AuthAny(s.codec), s.changePassword)

	users := r.Group("/manage/user", middleware.Auth(s.codec, token.KindManage))
	{
		users.GET("", s.getUsers)
		users.POST("", s.createUser)
		users.DELETE("", s.deleteUser)
		users.PUT("", s.updateUser)
	}
}

// seedAccounts creates the bootstrap admin account under both roles so
// a fresh database is immediately usable; duplicates on restart are
// expected and ignored.
func seedAccounts(db *gorm.DB, logger *log.Logger) {
	users := repository.NewUserRepository(db)
	for _, perm := range []model.Permission{model.PermissionAdmin, model.PermissionUser} {
		err := users.Create(context.Background(), &model.User{
			Username: "admin",
			Password: "admin",
			Perm:     perm,
		})
		if err != nil && !errors.Is(err, dferrors.ErrDuplicateAccount) {
			logger.Warningf("seed %v account failed: %v", perm, err)
		}
	}
}

func writeOk(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Ok(data))
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.Errorf(msg))
}
