package controllers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"stayinubud/config"
	"stayinubud/dto"
	"stayinubud/response"
	"stayinubud/services"
)

// Login authenticates a back-office account and issues an access token.
// POST /auth/login
func Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	user, err := services.GetUserByEmail(input.Email)
	if err != nil {
		response.BadRequest(c, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		response.BadRequest(c, "invalid email or password")
		return
	}

	userInfo := services.UserInfo{
		UserID: user.ID,
		Role:   user.Role,
	}

	accessToken, err := services.GenerateToken(userInfo, 60*24*3)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"user_info":   toUserLoginResponse(user.ID, user.Name, user.Email, user.Role),
		"accessToken": accessToken,
	})
}

// Logout clears the client's cookies. Tokens are stateless, so there is
// nothing to revoke server-side.
// DELETE /auth/logout
func Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}

// AuthGoogle signs in with a Google ID token, provisioning the account on
// first sight of the email.
// POST /auth/google
func AuthGoogle(c *gin.Context) {
	var input dto.GoogleAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payload, err := verifyGoogleIDToken(input.TokenID)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	name, _ := payload.Claims["name"].(string)
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		response.BadRequest(c, "email has not been verified")
		return
	}

	user, err := services.CreateGoogleUser(name, email)
	if err != nil {
		response.ServerError(c)
		return
	}

	userInfo := services.UserInfo{
		UserID: user.ID,
		Role:   user.Role,
	}
	accessToken, err := services.GenerateToken(userInfo, 60*24*3)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"user_info":   toUserLoginResponse(user.ID, user.Name, user.Email, user.Role),
		"accessToken": accessToken,
	})
}

func verifyGoogleIDToken(tokenID string) (*idtoken.Payload, error) {
	return idtoken.Validate(context.Background(), tokenID, config.GetEnv("GOOGLE_CLIENT_ID"))
}

func toUserLoginResponse(id uint, name, email string, role int) dto.UserLoginResponse {
	return dto.UserLoginResponse{
		UserID:    id,
		UserName:  name,
		UserEmail: email,
		UserRole:  role,
	}
}
