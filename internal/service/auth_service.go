package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/entity"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/specification"
	"fantasy-hoops-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenIssuer interface {
	Issue(userID uuid.UUID, ttl time.Duration) (string, *serverutils.Claims, error)
}

type TokenRevocationStore interface {
	Revoke(jti string, until time.Time)
}

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *serverutils.Claims) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	issuer     TokenIssuer
	denylist   TokenRevocationStore
	tokenTTL   time.Duration
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	issuer TokenIssuer,
	denylist TokenRevocationStore,
	tokenTTL time.Duration,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		issuer:     issuer,
		denylist:   denylist,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func passwordHasLetterAndDigit(password string) bool {
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !passwordHasLetterAndDigit(req.Password) {
		return nil, serverutils.BadRequest(msgWeakPassword).OnField("password")
	}
	email := normalizeEmail(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().Count(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, s.accountFailure("count users", err)
	}
	if existing > 0 {
		return nil, serverutils.Conflict(msgEmailTaken).OnField("email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, s.accountFailure("hash password", err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, serverutils.Conflict(msgEmailTaken).OnField("email")
		}
		return nil, s.accountFailure("create user", err)
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id.String()})
	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

// Login answers every credential failure with the same message.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: normalizeEmail(req.Email)})
	if err != nil {
		return nil, s.accountFailure("find user", err)
	}
	if user == nil {
		return nil, serverutils.Unauthorized(msgInvalidLogin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.Unauthorized(msgInvalidLogin)
	}

	token, claims, err := s.issuer.Issue(user.Id, s.tokenTTL)
	if err != nil {
		return nil, s.accountFailure("issue token", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User: dto.UserInfo{
			Id:    user.Id,
			Email: user.Email,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *serverutils.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return serverutils.Unauthorized("You must be signed in.")
	}
	s.denylist.Revoke(claims.ID, claims.ExpiresAt.Time)
	return nil
}

func (s *authService) accountFailure(step string, err error) error {
	s.logger.Error("AUTH", "Account operation failed", map[string]interface{}{
		"step":  step,
		"error": err.Error(),
	})
	return serverutils.Internal(msgAccountFailure, err)
}
