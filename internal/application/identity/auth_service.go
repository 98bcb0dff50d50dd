package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account
	ErrEmailTaken = shared.NewDomainError("ALREADY_EXISTS", "Email already registered")
	// ErrInvalidCredentials hides whether the email or the password was wrong
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Incorrect email or password")
	// ErrDefaultPlanMissing means the platform was not seeded with a default plan
	ErrDefaultPlanMissing = shared.NewDomainError("DEFAULT_PLAN_MISSING", "Default plan not configured")
	// ErrAccountInactive is returned for deactivated accounts
	ErrAccountInactive = shared.NewDomainError("FORBIDDEN", "Account is inactive")
)

// TokenIssuer issues and validates access tokens
type TokenIssuer interface {
	GenerateToken(input auth.GenerateTokenInput) (*auth.Token, error)
	ValidateToken(token string) (*auth.Claims, error)
}

// IdentityVerifier verifies external identity provider tokens
type IdentityVerifier interface {
	Verify(token string) (*auth.ExternalIdentity, error)
}

// AccountNotifier sends account emails
type AccountNotifier interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendStaffInvitation(ctx context.Context, email, name, storeName, tempPassword string) error
}

// Principal is the authenticated caller of a request
type Principal struct {
	User   *domain.User
	Claims *auth.Claims
}

// AuthService handles sign-up, login and token checks
type AuthService struct {
	userRepo  domain.UserRepository
	planRepo  domain.PlanRepository
	tokens    TokenIssuer
	verifier  IdentityVerifier
	blacklist auth.TokenBlacklist
	publisher shared.EventPublisher
	notifier  AccountNotifier
	logger    *zap.Logger
}

// AuthServiceOption configures optional collaborators of AuthService
type AuthServiceOption func(*AuthService)

// WithIdentityVerifier enables identity provider login
func WithIdentityVerifier(v IdentityVerifier) AuthServiceOption {
	return func(s *AuthService) { s.verifier = v }
}

// WithTokenBlacklist enables logout
func WithTokenBlacklist(b auth.TokenBlacklist) AuthServiceOption {
	return func(s *AuthService) { s.blacklist = b }
}

// WithAuthEvents publishes UserRegistered
func WithAuthEvents(p shared.EventPublisher) AuthServiceOption {
	return func(s *AuthService) { s.publisher = p }
}

// WithAccountNotifier sends the welcome email
func WithAccountNotifier(n AccountNotifier) AuthServiceOption {
	return func(s *AuthService) { s.notifier = n }
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo domain.UserRepository,
	planRepo domain.PlanRepository,
	tokens TokenIssuer,
	logger *zap.Logger,
	opts ...AuthServiceOption,
) *AuthService {
	s := &AuthService{
		userRepo: userRepo,
		planRepo: planRepo,
		tokens:   tokens,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a store owner on the default plan
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	plan, err := s.defaultPlan(ctx)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	user.Nickname = strings.TrimSpace(req.Nickname)
	user.Phone = strings.TrimSpace(req.Phone)
	user.City = strings.TrimSpace(req.City)
	user.AssignPlan(plan)
	if err := s.assignSlug(ctx, user, req.ShopSlug); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("store registered", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
	s.afterSignup(ctx, user)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login checks email and password and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	email := domain.NormalizeEmail(req.Identifier())
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("login with wrong password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrAccountInactive
	}
	return s.issue(user)
}

// IdPLogin exchanges an identity provider token for a local token,
// creating the account on first sight
func (s *AuthService) IdPLogin(ctx context.Context, req IdPLoginRequest) (*TokenResponse, error) {
	if s.verifier == nil {
		return nil, shared.NewDomainError("NOT_CONFIGURED", "Identity provider login is not configured")
	}
	identity, err := s.verifier.Verify(req.Token)
	if err != nil {
		s.logger.Warn("identity provider token rejected", zap.Error(err))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid identity token")
	}

	user, err := s.userRepo.FindByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		user, err = s.provision(ctx, identity)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if !user.IsActive() {
		return nil, ErrAccountInactive
	}
	return s.issue(user)
}

func (s *AuthService) provision(ctx context.Context, identity *auth.ExternalIdentity) (*domain.User, error) {
	plan, err := s.defaultPlan(ctx)
	if err != nil {
		return nil, err
	}
	password, err := RandomPassword()
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(identity.Email, password, identity.Name)
	if err != nil {
		return nil, err
	}
	user.AssignPlan(plan)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// another request provisioned the same email first
			return s.userRepo.FindByEmail(ctx, identity.Email)
		}
		return nil, fmt.Errorf("provision user: %w", err)
	}

	s.logger.Info("user provisioned from identity provider", zap.String("user_id", user.ID.String()))
	s.afterSignup(ctx, user)
	return user, nil
}

// Me returns the account a token subject refers to
func (s *AuthService) Me(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Authenticate validates a bearer token, rejects revoked tokens and loads
// the account named by the token subject
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("token blacklist unavailable", zap.Error(err))
		} else if revoked {
			return nil, auth.ErrTokenBlacklisted
		}
		invalidated, err := s.blacklist.SessionsRevokedAt(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err == nil && invalidated {
			return nil, auth.ErrTokenBlacklisted
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, auth.ErrInvalidClaims
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountInactive
	}
	return &Principal{User: user, Claims: claims}, nil
}

// Logout revokes the token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil {
		return nil
	}
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.RevokeToken(ctx, claims.ID, ttl)
}

func (s *AuthService) issue(user *domain.User) (*TokenResponse, error) {
	token, err := s.tokens.GenerateToken(auth.GenerateTokenInput{
		Email:    user.Email,
		UserID:   user.ID,
		TenantID: user.TenantID(),
		Role:     user.Role,
	})
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err))
		return nil, err
	}
	return &TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

func (s *AuthService) defaultPlan(ctx context.Context) (*domain.Plan, error) {
	plan, err := s.planRepo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("no default plan configured")
			return nil, ErrDefaultPlanMissing
		}
		return nil, err
	}
	return plan, nil
}

// assignSlug uses the requested slug or one derived from the store name,
// suffixing part of the user id when it is taken
func (s *AuthService) assignSlug(ctx context.Context, user *domain.User, requested string) error {
	base := Slugify(requested)
	if base == "" {
		base = Slugify(user.DisplayName())
	}
	if base == "" {
		return nil
	}

	_, err := s.userRepo.FindByShopSlug(ctx, base)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		user.SetShopSlug(base)
	case err != nil:
		return fmt.Errorf("check slug: %w", err)
	default:
		if requested != "" {
			return shared.NewDomainError("ALREADY_EXISTS", "Shop slug already taken")
		}
		user.SetShopSlug(base + "-" + user.ID.String()[:6])
	}
	return nil
}

func (s *AuthService) afterSignup(ctx context.Context, user *domain.User) {
	events := user.PullEvents()
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("publish user events", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(ctx, user.Email, user.DisplayName()); err != nil {
			s.logger.Warn("welcome email not sent", zap.String("email", user.Email), zap.Error(err))
		}
	}
}

// RandomPassword returns a 16-character hex password
func RandomPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
