package handler

import (
	"errors"
	"log"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/model"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

func LoginHandler(c *gin.Context, userService *usecase.UserService) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid login request")
		return
	}

	user, err := userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			middleware.TrackAuthAttempt("failure", "login")
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
		log.Printf("Login failed: %v", err)
		utils.InternalError(c, "Server error")
		return
	}

	if user.TwoFactorEnabled {
		if req.TwoFactorCode == "" {
			utils.Success(c, gin.H{"requires_2fa": true})
			return
		}
		if !totp.Validate(req.TwoFactorCode, user.TwoFactorSecret) {
			middleware.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Invalid two-factor code")
			return
		}
		middleware.TrackAuthAttempt("success", "2fa")
	}

	token, err := services.GenerateToken(user.ID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	browser, osName, device := utils.ParseUserAgent(c.GetHeader("User-Agent"))
	log.Printf("User %s logged in from %s on %s (%s)", user.ID, browser, osName, device)

	middleware.TrackAuthAttempt("success", "login")
	utils.Success(c, dto.TokenPairResponse{Token: token, RefreshToken: refreshToken})
}
