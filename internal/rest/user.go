package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/rest/request"
)

type userHandler struct {
	Service domain.UserUsecase
}

func NewUserHandler(svc domain.UserUsecase) *userHandler {
	return &userHandler{
		Service: svc,
	}
}

// Register creates a new account
func (h *userHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	err := h.Service.Register(c.Request.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		if err == domain.ErrConflict {
			c.JSON(http.StatusConflict, ResponseError{Message: "username already taken"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

// Login verifies credentials and returns a signed token
func (h *userHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if err == domain.ErrNotFound || err == domain.ErrBadParamInput {
			c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
