package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linemk/order-days/internal/domain/models"
	security "github.com/linemk/order-days/internal/jwt-new"
	"github.com/linemk/order-days/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// MsgInvalidCredentials - одно сообщение и для неизвестного логина, и для неверного пароля
const MsgInvalidCredentials = "بيانات الدخول غير صحيحة."

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginResult - токен и публичный профиль
type LoginResult struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	jwtSecret string
	tokenTTL  time.Duration

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login проверяет логин и пароль и выдаёт подписанный токен.
// Пользователи здесь не создаются: их заводит команда createuser.
func (a *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	user, err := a.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			logger.Error("failed to get user", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
		}
		// сравниваем с фиктивным хэшем, чтобы время ответа не выдавало отсутствие логина
		_ = bcrypt.CompareHashAndPassword(a.fakeHash(), []byte(password))
		logger.Warn("unknown username")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	profile := user.Profile()
	token, err := security.NewToken(profile, a.jwtSecret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return &LoginResult{Token: token, User: profile}, nil
}

func (a *AuthService) fakeHash() []byte {
	a.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
		if err != nil {
			a.log.Error("failed to build dummy hash", slog.Any("error", err))
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

// HashPassword - bcrypt-хэш пароля для команды createuser
func HashPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, newValidationError("password is required.")
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// ProvisionUser создаёт пользователя или обновляет пароль и имя существующего (upsert по логину).
func (a *AuthService) ProvisionUser(ctx context.Context, username, password, name string) (*models.User, error) {
	const op = "service.AuthService.ProvisionUser"
	logger := a.log.With(slog.String("op", op), slog.String("username", username))

	if username == "" {
		return nil, fmt.Errorf("%s: %w", op, newValidationError("username is required."))
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.userRepo.UpsertUser(ctx, &models.User{Username: username, PasswordHash: hash, Name: name})
	if err != nil {
		logger.Error("failed to upsert user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("user upserted", slog.Int64("userID", user.ID))
	return user, nil
}
