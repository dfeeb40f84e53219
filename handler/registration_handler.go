package handler

import (
	"errors"
	"log"

	"quicknotes/dto"
	"quicknotes/middleware"
	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid registration request")
		return
	}

	user, err := userService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			middleware.TrackAuthAttempt("failure", "signup")
			utils.Conflict(c, "Email already registered")
			return
		}
		log.Printf("Registration failed: %v", err)
		utils.InternalError(c, "Failed to create account")
		return
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

	middleware.TrackAuthAttempt("success", "signup")
	utils.Created(c, dto.TokenPairResponse{Token: token, RefreshToken: refreshToken})
}
