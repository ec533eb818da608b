package service

import (
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/config"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	authconstant "github.com/AnthoniusHendriyanto/clinic-service/pkg/constant"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	cfg          *config.Config
	log          *zap.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, cfg *config.Config, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		cfg:          cfg,
		log:          log,
	}
}

// CreateUser validates the profile, hashes the password and stores the user
// together with its role profile row.
func (s *UserService) CreateUser(ctx context.Context, input dto.RegisterInput, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, autherror.Validation("role must be one of patient, doctor, admin")
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	dob, err := validateRegistration(input)
	if err != nil {
		return nil, err
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		PhoneNumber:  input.PhoneNumber,
		Gender:       input.Gender,
		DOB:          dob,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	details := domain.ProfileDetails{
		MedicalHistory:   input.MedicalHistory,
		Allergies:        input.Allergies,
		EmergencyContact: input.EmergencyContact,
		Specialization:   input.Specialization,
		LicenseNumber:    input.LicenseNumber,
		ExperienceYears:  input.ExperienceYears,
	}

	if err := s.repo.Create(ctx, user, details); err != nil {
		return nil, err
	}

	return user, nil
}

// Register is public sign-up. Role defaults to patient; admin cannot be chosen.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	role := domain.RolePatient
	if input.Role != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok || !parsed.SelfRegistrable() {
			return nil, autherror.Validation("role must be patient or doctor")
		}
		role = parsed
	}

	user, err := s.CreateUser(ctx, input, role)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", role.String()))

	return &dto.AuthResponse{User: dto.NewUserOutput(user), Tokens: *tokens}, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, autherror.MissingField("email")
	}
	if input.Password == "" {
		return nil, autherror.MissingField("password")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Burn one bcrypt comparison for unknown emails too.
		_ = bcrypt.CompareHashAndPassword(s.dummyPasswordHash(), []byte(input.Password))
		s.log.Info("login failed", zap.String("reason", "unknown email"), zap.String("ip", input.IPAddress))
		return nil, autherror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, autherror.ErrAccountDeactivated
	}

	if user.LockedAt(time.Now()) {
		return nil, autherror.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		lockFor := time.Duration(s.cfg.LoginLockoutMinutes) * time.Minute
		lockedUntil, err := s.repo.RecordLoginFailure(ctx, user.ID, s.cfg.LoginMaxAttempts, lockFor)
		if err != nil {
			s.log.Warn("failed to record login failure", zap.String("user_id", user.ID), zap.Error(err))
		}
		if lockedUntil != nil {
			s.log.Warn("account locked", zap.String("user_id", user.ID), zap.Time("until", *lockedUntil))
			return nil, autherror.ErrAccountLocked
		}
		s.log.Info("login failed", zap.String("user_id", user.ID), zap.String("ip", input.IPAddress))
		return nil, autherror.ErrInvalidCredentials
	}

	if err := s.repo.RecordLoginSuccess(ctx, user.ID); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: dto.NewUserOutput(user), Tokens: *tokens}, nil
}

// Refresh rotates the session. Only the refresh token currently stored on the
// user row is accepted; any older token is rejected even if its signature is valid.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	if input.RefreshToken == "" {
		return nil, autherror.MissingField("refresh_token")
	}

	claims, err := s.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == nil || *user.RefreshToken != input.RefreshToken {
		s.log.Warn("refresh token rejected", zap.String("user_id", claims.UserID))
		return nil, autherror.ErrTokenInvalid
	}
	if !user.IsActive {
		return nil, autherror.ErrAccountDeactivated
	}

	return s.issueTokens(ctx, user)
}

// Logout clears the stored refresh token. Failures are logged and not returned.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.SetRefreshToken(ctx, userID, nil); err != nil {
		s.log.Warn("failed to clear refresh token on logout", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) error {
	if input.CurrentPassword == "" {
		return autherror.MissingField("current_password")
	}
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}

	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return autherror.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, string(hashedPassword))
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// ForceLogout drops the user's session so the next refresh fails.
func (s *UserService) ForceLogout(ctx context.Context, userID string) error {
	if _, err := s.CurrentUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetRefreshToken(ctx, userID, nil)
}

func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	if err := s.repo.SetActive(ctx, userID, false); err != nil {
		return err
	}
	s.log.Info("user deactivated", zap.String("user_id", userID))
	return nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, _, err := s.tokenService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, autherror.Internal(err)
	}

	if err := s.repo.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    authconstant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

func (s *UserService) dummyPasswordHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("clinic-service-dummy-password"), s.cfg.BcryptCost)
	})
	return s.dummyHash
}

func validateRegistration(input dto.RegisterInput) (*time.Time, error) {
	if input.FullName == "" {
		return nil, autherror.MissingField("full_name")
	}
	if input.Email == "" {
		return nil, autherror.MissingField("email")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, autherror.InvalidFormat("email is not a valid address")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.Gender != nil {
		switch *input.Gender {
		case "male", "female", "other":
		default:
			return nil, autherror.InvalidFormat("gender must be one of male, female, other")
		}
	}
	if input.ExperienceYears < 0 {
		return nil, autherror.Validation("experience_years cannot be negative")
	}
	if input.DOB == nil || *input.DOB == "" {
		return nil, nil
	}
	dob, err := time.Parse(dto.DateLayout, *input.DOB)
	if err != nil {
		return nil, autherror.InvalidFormat("dob must be formatted as YYYY-MM-DD")
	}
	return &dob, nil
}

func validatePassword(password string) error {
	if password == "" {
		return autherror.MissingField("password")
	}
	if len(password) < authconstant.MinPasswordLength || len(password) > authconstant.MaxPasswordLength {
		return autherror.Validation("password must be between 8 and 128 characters")
	}
	return nil
}
