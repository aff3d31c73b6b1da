package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayinubud/config"
	"stayinubud/models"
)

// UserInfo is the claims payload carried inside issued tokens.
type UserInfo struct {
	UserID uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

var secretKey = []byte(config.GetEnv("SECRET_KEY_ACCESS_TOKEN"))

// GetUserByEmail looks up a back-office account.
func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("no user with email %s", email)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// GenerateToken issues a signed access token for a back-office account.
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// CreateGoogleUser provisions an account for a Google sign-in the first time
// that email is seen.
func CreateGoogleUser(name, email string) (models.User, error) {
	user := models.User{
		Name:   name,
		Email:  email,
		Role:   models.RoleGuest,
		Status: 1,
	}
	if err := config.DB.Where("email = ?", email).FirstOrCreate(&user, models.User{Email: email}).Error; err != nil {
		return user, err
	}
	return user, nil
}
