package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/vies"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type VATChecker interface {
	Validate(ctx context.Context, raw string) vies.Verdict
}

type TokenIssuer interface {
	Issue(principal model.Principal, ttl time.Duration) (string, time.Time, error)
}

type UserService struct {
	repo     UserStore
	vat      VATChecker
	tokens   TokenIssuer
	tokenTTL time.Duration
	validate *validator.Validate
	log      zerolog.Logger
}

type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
	VATNumber   string `json:"vat_number" validate:"required"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *model.User `json:"user"`
}

func NewUserService(repo UserStore, vat VATChecker, tokens TokenIssuer, tokenTTL time.Duration, log zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		vat:      vat,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		validate: newValidator(),
		log:      log,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.CompanyName = strings.TrimSpace(input.CompanyName)

	verr := &ValidationError{}
	if err := collectStructErrors(s.validate, input, verr); err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	verdict := s.vat.Validate(ctx, input.VATNumber)
	if !verdict.IsValid {
		s.log.Info().Str("vat_number", verdict.Number).Str("source", string(verdict.Source)).Msg("registration rejected: invalid VAT number")
		verr.add("vat_number", "invalid VAT number")
		return nil, verr
	}

	exists, err := s.repo.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q", ErrConflict, input.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		CompanyName:  input.CompanyName,
		VATNumber:    verdict.Number,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username %q", ErrConflict, input.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, input LoginInput) (*AuthResult, error) {
	verr := &ValidationError{}
	if err := collectStructErrors(s.validate, input, verr); err != nil {
		return nil, err
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(model.Principal{
		UserID:    user.ID,
		Username:  user.Username,
		VATNumber: user.VATNumber,
	}, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
