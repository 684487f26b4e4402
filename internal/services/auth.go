package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/redisstore"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
)

type AdminClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type AdminIdentity struct {
	AdminID uuid.UUID
	Email   string
}

// AdminAuthService mints and validates the admin session cookie. The cookie
// is a signed JWT carrying a session id; the session itself lives in redis so
// logout revokes it server-side, not just client-side.
type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, tokenString string) error
	Validate(ctx context.Context, tokenString string) (AdminIdentity, error)
	SessionTTL() time.Duration
}

type adminAuthService struct {
	db           *gorm.DB
	log          *logger.Logger
	adminRepo    repos.AdminUserRepo
	sessionStore redisstore.SessionStore
	jwtSecretKey string
	sessionTTL   time.Duration
}

func NewAdminAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	adminRepo repos.AdminUserRepo,
	sessionStore redisstore.SessionStore,
	jwtSecretKey string,
	sessionTTL time.Duration,
) AdminAuthService {
	return &adminAuthService{
		db:           db,
		log:          baseLog.With("service", "AdminAuthService"),
		adminRepo:    adminRepo,
		sessionStore: sessionStore,
		jwtSecretKey: jwtSecretKey,
		sessionTTL:   sessionTTL,
	}
}

func (as *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apierr.Validation("email and password are required")
	}

	admin, err := as.adminRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", apierr.Store(fmt.Errorf("load admin by email: %w", err))
	}
	if admin == nil {
		// Same response as a bad password; do not leak which emails exist.
		return "", apierr.Validation("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apierr.Validation("invalid email or password")
	}

	sessionID := uuid.New().String()
	session := redisstore.Session{
		AdminID:   admin.ID.String(),
		Email:     admin.Email,
		CreatedAt: time.Now(),
	}
	if err := as.sessionStore.Put(ctx, sessionID, session, as.sessionTTL); err != nil {
		return "", apierr.BackendUnavailable("redis", err)
	}

	claims := AdminClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", apierr.Store(fmt.Errorf("sign session token: %w", err))
	}

	as.log.Info("admin logged in", "admin_id", admin.ID.String(), "session_id", sessionID)
	return signed, nil
}

func (as *adminAuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := as.parseClaims(tokenString)
	if err != nil {
		// An already-invalid cookie is as logged out as it gets.
		return nil
	}
	if err := as.sessionStore.Delete(ctx, claims.SessionID); err != nil {
		return apierr.BackendUnavailable("redis", err)
	}
	as.log.Info("admin logged out", "session_id", claims.SessionID)
	return nil
}

func (as *adminAuthService) Validate(ctx context.Context, tokenString string) (AdminIdentity, error) {
	claims, err := as.parseClaims(tokenString)
	if err != nil {
		return AdminIdentity{}, apierr.New(401, apierr.CodeValidation, fmt.Errorf("invalid session token: %w", err))
	}

	session, err := as.sessionStore.Get(ctx, claims.SessionID)
	if err == redisstore.ErrSessionNotFound {
		return AdminIdentity{}, apierr.New(401, apierr.CodeValidation, fmt.Errorf("session revoked or expired"))
	}
	if err != nil {
		return AdminIdentity{}, apierr.BackendUnavailable("redis", err)
	}

	adminID, err := uuid.Parse(session.AdminID)
	if err != nil {
		return AdminIdentity{}, apierr.Store(fmt.Errorf("corrupt session admin id: %w", err))
	}
	return AdminIdentity{AdminID: adminID, Email: session.Email}, nil
}

func (as *adminAuthService) SessionTTL() time.Duration { return as.sessionTTL }

func (as *adminAuthService) parseClaims(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return claims, nil
}

// HashAdminPassword is used by the seed tooling when creating admin accounts.
func HashAdminPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apierr.Validation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
