package rest

import (
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	UserName string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	UserName string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := s.users.Register(c.Request.Context(), req.UserName, req.Password); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, messageResponse{Message: "registered"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Do not reveal which field was wrong.
		s.fail(c, common.ErrInvalidCredentials)
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// logout is stateless; the client discards its token.
func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (s *Server) me(c *gin.Context) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		s.fail(c, common.ErrorUnauthorized)
		return
	}
	c.JSON(http.StatusOK, meResponse{ID: id.UserID, UserName: id.UserName})
}
