package handler

import (
	"errors"
	"log"

	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

// ForgotPasswordHandler issues a short-lived reset token. Without an
// outbound mailer the token is logged for the operator to relay.
func ForgotPasswordHandler(c *gin.Context, userService *usecase.UserService) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := userService.UsersRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "No account with that email")
			return
		}
		log.Printf("Password reset lookup failed: %v", err)
		utils.InternalError(c, "Server error")
		return
	}

	resetToken, err := services.GenerateResetToken(user.ID)
	if err != nil {
		utils.InternalError(c, "Failed to generate reset token")
		return
	}

	log.Printf("Password reset token for %s: %s", user.Email, resetToken)
	utils.Success(c, gin.H{"message": "Password reset token issued"})
}

func ResetPasswordHandler(c *gin.Context, userService *usecase.UserService) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, err := services.ParseResetToken(req.Token)
	if err != nil {
		utils.BadRequest(c, "Invalid or expired reset token")
		return
	}

	if err := userService.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		log.Printf("Password reset failed: %v", err)
		utils.InternalError(c, "Failed to reset password")
		return
	}

	utils.Success(c, gin.H{"message": "Password updated successfully"})
}
