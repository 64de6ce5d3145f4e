package handlers

import (
	"log"
	"net/http"

	"drone-survey-service/internal/models"
	"drone-survey-service/internal/services"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.IUserService
}

func NewAuthHandler(userService services.IUserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	authGr := router.Group("/api/v1/auth")

	authGr.POST("/register", h.Register)
	authGr.POST("/login", h.Login)
	authGr.POST("/refresh-token", h.RefreshToken)

	protected := authGr.Group("")
	protected.Use(m.RequireAuth())
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.GetCurrentUser)
	protected.PATCH("/change-password", h.ChangePassword)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}
	if ok, err := utils.ValidateEmail(req.Email); !ok {
		log.Printf("Register rejected: %v", err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("VALIDATION_ERROR", "invalid email address"))
		return
	}

	user, tokens, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	user, tokens, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}))
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	tokens, err := h.userService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(tokens))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(ContextUserIDKey)
	if err := h.userService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"message": "Logged out successfully"}))
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString(ContextUserIDKey)
	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"user": user}))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	userID := c.GetString(ContextUserIDKey)
	tokens, err := h.userService.ChangePassword(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"message":      "Password updated successfully",
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}))
}
