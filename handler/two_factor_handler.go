package handler

import (
	"errors"
	"log"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/repository"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

type twoFactorVerifyRequest struct {
	Code string `json:"code" binding:"required"`
}

// Setup2FAHandler generates a TOTP secret for the caller. The secret is
// stored disabled until the first code is verified.
func Setup2FAHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")

	user, err := userService.UsersRepo.FindByID(userID)
	if err != nil {
		log.Printf("2FA setup lookup failed: %v", err)
		utils.InternalError(c, "Server error")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "QuickNotes",
		AccountName: user.Email,
	})
	if err != nil {
		log.Printf("Failed to generate TOTP key: %v", err)
		utils.InternalError(c, "Failed to set up two-factor authentication")
		return
	}

	if err := userService.UsersRepo.SetTwoFactor(userID, key.Secret(), false); err != nil {
		log.Printf("Failed to store TOTP secret: %v", err)
		utils.InternalError(c, "Failed to set up two-factor authentication")
		return
	}

	utils.Success(c, dto.TwoFactorSetupResponse{
		Secret:     key.Secret(),
		OtpauthURL: key.URL(),
	})
}

// Verify2FAHandler confirms the first TOTP code and switches 2FA on.
func Verify2FAHandler(c *gin.Context, userService *usecase.UserService) {
	userID := c.GetString("user_id")

	var req twoFactorVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Verification code is required")
		return
	}

	user, err := userService.UsersRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalError(c, "Server error")
		return
	}
	if user.TwoFactorSecret == "" {
		utils.BadRequest(c, "Two-factor authentication has not been set up")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		middleware.TrackAuthAttempt("failure", "2fa")
		utils.Unauthorized(c, "Invalid two-factor code")
		return
	}

	if err := userService.UsersRepo.SetTwoFactor(userID, user.TwoFactorSecret, true); err != nil {
		utils.InternalError(c, "Failed to enable two-factor authentication")
		return
	}

	middleware.TrackAuthAttempt("success", "2fa")
	utils.Success(c, gin.H{"message": "Two-factor authentication enabled"})
}
