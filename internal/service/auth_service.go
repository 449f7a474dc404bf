package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/montyapp/monty-backend/internal/domain"
)

const tokenTTL = 7 * 24 * time.Hour

// AuthService exchanges Telegram WebApp init data for self-issued HS256
// bearer tokens.
type AuthService struct {
	userRepo   domain.UserRepository
	jwtSecret  []byte
	botToken   string
	allowedIDs []int64
}

// NewAuthService creates a new AuthService. With an empty botToken the init
// data signature is not verifiable and authentication is refused.
func NewAuthService(userRepo domain.UserRepository, jwtSecret, botToken string, allowedIDs []int64) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		botToken:   botToken,
		allowedIDs: allowedIDs,
	}
}

// AuthResult is the token payload returned to the Mini App.
type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int32  `json:"user_id"`
	FirstName   string `json:"first_name"`
}

// telegramUser is the user object embedded in init data.
type telegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// AccessTokenClaims are the claims carried by issued tokens.
type AccessTokenClaims struct {
	UserID     int32 `json:"user_id"`
	TelegramID int64 `json:"telegram_id"`
	jwt.StandardClaims
}

// Authenticate validates initData, upserts the user, and issues a token.
func (s *AuthService) Authenticate(initData string) (*AuthResult, error) {
	params, err := url.ParseQuery(initData)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !s.verifyInitData(params) {
		return nil, domain.ErrUnauthorized
	}

	var tgUser telegramUser
	if err := json.Unmarshal([]byte(params.Get("user")), &tgUser); err != nil || tgUser.ID == 0 {
		return nil, domain.ErrUnauthorized
	}

	if len(s.allowedIDs) > 0 && !slices.Contains(s.allowedIDs, tgUser.ID) {
		return nil, domain.ErrUserNotAllowed
	}

	firstName := tgUser.FirstName
	if firstName == "" {
		firstName = "User"
	}
	user, err := s.userRepo.Upsert(&domain.User{
		TelegramID: tgUser.ID,
		FirstName:  firstName,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		FirstName:   user.FirstName,
	}, nil
}

// verifyInitData checks the init data signature per the Telegram WebApp
// scheme: the hash parameter must equal HMAC-SHA256 of the sorted
// key=value lines under a secret derived from the bot token.
func (s *AuthService) verifyInitData(params url.Values) bool {
	if s.botToken == "" {
		return false
	}
	received := params.Get("hash")
	if received == "" {
		return false
	}

	var lines []string
	for key := range params {
		if key == "hash" {
			continue
		}
		lines = append(lines, key+"="+params.Get(key))
	}
	sort.Strings(lines)
	checkString := strings.Join(lines, "\n")

	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(s.botToken))
	secret := secretMAC.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(received))
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		UserID:     user.ID,
		TelegramID: user.TelegramID,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(int64(user.ID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates a bearer token and returns the user id it carries.
func (s *AuthService) VerifyToken(tokenString string) (int32, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}
	return claims.UserID, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}
