package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fosel/chirp/internal/domain"
	"github.com/fosel/chirp/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("email address already in use")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	repos     repository.Repos
	projector *Projector
	jwtSecret []byte
}

func NewAuthService(repos repository.Repos, projector *Projector, jwtSecret string) *AuthService {
	return &AuthService{
		repos:     repos,
		projector: projector,
		jwtSecret: []byte(jwtSecret),
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.FullUser `json:"user"`
	AccessToken string           `json:"access_token"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	existing, err := s.repos.Users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration for this email.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.respond(ctx, user.Email)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.repos.Users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrInvalidCreds
	}

	return s.respond(ctx, user.Email)
}

// Me returns the authenticated user's full projection.
func (s *AuthService) Me(ctx context.Context, email string) (*domain.FullUser, error) {
	return s.projector.FullUser(ctx, email)
}

// Profile returns another user's count-only projection.
func (s *AuthService) Profile(ctx context.Context, email string) (*domain.PublicProfile, error) {
	profile, err := s.projector.PublicProfile(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

func (s *AuthService) UpdateNickname(ctx context.Context, actor, nickname string) error {
	return s.repos.Users.UpdateNickname(ctx, actor, nickname)
}

func (s *AuthService) respond(ctx context.Context, email string) (*AuthResponse, error) {
	full, err := s.projector.FullUser(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: full, AccessToken: token}, nil
}

func (s *AuthService) generateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
