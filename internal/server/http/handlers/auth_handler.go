package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/server/http/dto"
	"github.com/polkiloo/smartxerox/internal/server/http/middleware"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

// AuthHandler processes registration, login and profile requests.
type AuthHandler struct {
	facade AuthFacade
	opts   Options
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, opts Options) *AuthHandler {
	return &AuthHandler{facade: facade, opts: opts}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	student, err := h.facade.RegisterStudent(c.Request.Context(), usecase.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, dto.Fail("Email or phone number already registered"))
			return
		}
		respondError(c, h.opts, err, "Student not found")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Registration successful", toStudentResponse(student)))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	student, token, err := h.facade.LoginStudent(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.opts, err, "Student not found")
		return
	}

	middleware.SetAuthCookie(c, token, int(pkgAuth.StudentTokenTTL.Seconds()))
	c.JSON(http.StatusOK, dto.OK("Login successful", dto.StudentLoginResponse{
		Token: token,
		User:  toStudentResponse(student),
	}))
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	student, err := h.facade.Profile(c.Request.Context(), claims)
	if err != nil {
		respondError(c, h.opts, err, "Student not found")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", toStudentResponse(student)))
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	token, err := h.facade.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.opts, err, "Admin not found")
		return
	}

	middleware.SetAuthCookie(c, token, int(pkgAuth.AdminTokenTTL.Seconds()))
	c.JSON(http.StatusOK, dto.OK("Login successful", dto.AdminLoginResponse{
		Token: token,
		Email: req.Email,
		Role:  string(pkgAuth.RoleAdmin),
	}))
}
