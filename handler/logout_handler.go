package handler

import (
	"log"
	"strings"

	"quicknotes/services"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
)

// LogoutHandler revokes the caller's tokens. The access token comes from
// the Authorization header; the refresh token, if the client still holds
// one, from the Refresh-Token header.
func LogoutHandler(c *gin.Context) {
	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	refreshToken := c.GetHeader("Refresh-Token")

	if err := services.BlacklistTokens(accessToken, refreshToken); err != nil {
		log.Printf("Failed to blacklist tokens: %v", err)
		utils.InternalError(c, "Failed to log out")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
