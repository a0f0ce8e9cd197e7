package helper

import (
	"errors"
	"time"

	"event_ticketing/config"
	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(config.Config("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func signToken(claim model.TokenClaim, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = claim.UserId
	claims["email"] = claim.Email
	claims["role"] = claim.Role
	claims["exp"] = time.Now().Add(ttl).Unix()
	return token.SignedString(JwtSecret)
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return signToken(claim, time.Minute*60)
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return signToken(claim, time.Hour*24*7)
}

func ParseToken(raw string) (*jwt.Token, error) {
	return jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JwtSecret, nil
	})
}

// GetInfoUserFromToken resolves the JWT stored by middleware.Protected into
// the current user row. Returns nil when the account no longer exists.
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, *model.User) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, nil
	}

	userIdFloat, _ := claims["userId"].(float64)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	claim := model.TokenClaim{UserId: uint(userIdFloat), Email: email, Role: role}
	if claim.UserId == 0 {
		return model.TokenClaim{}, nil
	}

	var user model.User
	if err := database.DB.First(&user, claim.UserId).Error; err != nil {
		return claim, nil
	}
	return claim, &user
}
