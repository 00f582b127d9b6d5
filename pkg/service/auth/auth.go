// Package auth registers and authenticates users and manages the token
// pair lifecycle. Refresh tokens are single use: redeeming one revokes it
// and issues a new pair.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	accountdomain "github.com/amirasaad/fintrack/pkg/domain/account"
	authdomain "github.com/amirasaad/fintrack/pkg/domain/auth"
	categorydomain "github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccountName names the cash account seeded at registration.
const DefaultAccountName = "Cash Wallet"

// Session is the result of a successful registration or login.
type Session struct {
	User   *dto.UserRead
	Tokens *dto.TokenPair
}

type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Auth
	ledger *config.Ledger
	logger *slog.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// New creates a new auth Service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Auth,
	ledger *config.Ledger,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		cfg:    cfg,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates the user together with a default cash account and the
// starter categories, then issues a token pair.
func (s *Service) Register(
	ctx context.Context,
	email, password, name string,
) (*Session, error) {
	log := s.logger.With("context", "Register")
	email, err := user.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := user.ValidatePassword(password); err != nil {
		return nil, err
	}
	name, err = user.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Info("Registration rejected", "reason", "email taken")
		return nil, domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID := uuid.New()
	var created *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if err := users.Create(ctx, dto.UserCreate{
			ID:             userID,
			Email:          email,
			Name:           name,
			HashedPassword: hash,
		}); err != nil {
			return err
		}
		if err := accounts.Create(ctx, dto.AccountCreate{
			ID:       uuid.New(),
			UserID:   userID,
			Name:     DefaultAccountName,
			Type:     string(accountdomain.Cash),
			Currency: s.ledger.DefaultCurrency,
		}); err != nil {
			return err
		}
		for _, seed := range categorydomain.Starter {
			if err := categories.Create(ctx, dto.CategoryCreate{
				ID:     uuid.New(),
				UserID: userID,
				Name:   seed.Name,
				Type:   string(seed.Type),
			}); err != nil {
				return err
			}
		}
		created, err = users.Get(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("Registration failed", "error", err)
		return nil, err
	}

	tokens, err := s.issue(ctx, s.uow, userID)
	if err != nil {
		log.Error("Issue tokens failed", "userID", userID, "error", err)
		return nil, err
	}
	log.Info("User registered", "userID", userID)
	return &Session{User: created, Tokens: tokens}, nil
}

// Login verifies the credentials and issues a token pair. Unknown emails
// and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	log := s.logger.With("context", "Login")
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	email, err = user.NormalizeEmail(email)
	if err != nil {
		_ = utils.CheckPasswordHash(password, s.dummy())
		log.Info("Login failed", "reason", "malformed email")
		return nil, domain.ErrInvalidCredentials
	}
	u, err := users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Burn the same bcrypt time as a real comparison.
		_ = utils.CheckPasswordHash(password, s.dummy())
		log.Info("Login failed", "reason", "unknown email")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Info("Login failed", "userID", u.ID, "reason", "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.issue(ctx, s.uow, u.ID)
	if err != nil {
		log.Error("Issue tokens failed", "userID", u.ID, "error", err)
		return nil, err
	}
	log.Info("Login successful", "userID", u.ID)
	return &Session{User: u, Tokens: tokens}, nil
}

// Refresh redeems a refresh token for a new pair. The presented token is
// revoked in the same unit of work, so it can be redeemed at most once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (tokens *dto.TokenPair, err error) {
	log := s.logger.With("context", "Refresh")
	userID, tokenID, err := s.parseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	log = log.With("userID", userID, "tokenID", tokenID)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.RefreshTokenRepository()
		if err != nil {
			return err
		}
		record, err := repo.Get(ctx, tokenID, userID)
		if err != nil {
			return err
		}
		now := s.now()
		state := authdomain.StateOf(record.RevokedAt, record.RevokedReason, record.ExpiresAt, now)
		if err := state.RedeemError(); err != nil {
			log.Warn("Refresh token rejected", "state", state)
			return err
		}
		if !utils.CheckTokenHash(refreshToken, record.TokenHash) {
			return domain.ErrInvalidRefreshToken
		}
		revoked, err := repo.Revoke(ctx, tokenID, authdomain.ReasonRotated, now)
		if err != nil {
			return err
		}
		if !revoked {
			// Lost a race with a concurrent redemption.
			return domain.ErrRefreshTokenRevoked
		}
		tokens, err = s.issue(ctx, uow, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info("Refresh token rotated")
	return tokens, nil
}

// Logout revokes the refresh token. Tokens that fail verification are
// ignored so the response never reveals whether a token was valid.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	userID, tokenID, err := s.parseRefresh(refreshToken)
	if err != nil {
		s.logger.Debug("Logout ignored unverifiable token", "error", err)
		return nil
	}
	repo, err := s.uow.RefreshTokenRepository()
	if err != nil {
		return err
	}
	if _, err := repo.Get(ctx, tokenID, userID); err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			return nil
		}
		return err
	}
	if _, err := repo.Revoke(ctx, tokenID, authdomain.ReasonLogout, s.now()); err != nil {
		return err
	}
	s.logger.Info("Logged out", "userID", userID, "tokenID", tokenID)
	return nil
}

// ResolveUser verifies an access token and loads its subject.
func (s *Service) ResolveUser(ctx context.Context, accessToken string) (*dto.UserRead, error) {
	token, err := jwt.ParseWithClaims(
		accessToken,
		&jwt.RegisteredClaims{},
		s.keyFunc(s.cfg.Jwt.AccessSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}
	return s.ResolveToken(ctx, token)
}

// ResolveToken loads the subject of an already verified access token.
func (s *Service) ResolveToken(ctx context.Context, token *jwt.Token) (*dto.UserRead, error) {
	if token == nil || !token.Valid {
		return nil, domain.ErrInvalidAccessToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrInvalidAccessToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrInvalidAccessToken
	}
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return users.Get(ctx, userID)
}

// issue signs a token pair and persists the hashed refresh record through
// uow, which may be a transaction-bound unit of work.
func (s *Service) issue(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) (*dto.TokenPair, error) {
	now := s.now()
	accessExpiresAt := now.Add(s.cfg.Jwt.AccessExpiry)
	access, err := sign(jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(accessExpiresAt),
	}, s.cfg.Jwt.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	tokenID := uuid.New()
	refreshExpiresAt := now.Add(time.Duration(s.cfg.RefreshTTLDays) * 24 * time.Hour)
	refresh, err := sign(jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        tokenID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(refreshExpiresAt),
	}, s.cfg.Jwt.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	hash, err := utils.HashToken(refresh, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash refresh token: %w", err)
	}

	repo, err := uow.RefreshTokenRepository()
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, dto.RefreshTokenCreate{
		ID:        tokenID,
		UserID:    userID,
		TokenHash: hash,
		IssuedAt:  now,
		ExpiresAt: refreshExpiresAt,
	}); err != nil {
		return nil, err
	}
	return &dto.TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

// parseRefresh verifies the signature of a refresh token and extracts its
// subject and id. Expiry is judged from the stored record, not the claim.
func (s *Service) parseRefresh(raw string) (userID, tokenID uuid.UUID, err error) {
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(
		raw,
		claims,
		s.keyFunc(s.cfg.Jwt.RefreshSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrInvalidRefreshToken
	}
	if userID, err = uuid.Parse(claims.Subject); err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrInvalidRefreshToken
	}
	if tokenID, err = uuid.Parse(claims.ID); err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrInvalidRefreshToken
	}
	return userID, tokenID, nil
}

func (s *Service) keyFunc(secret string) jwt.Keyfunc {
	return func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword(uuid.NewString(), s.cfg.BcryptCost)
	})
	return s.dummyHash
}

func sign(claims jwt.RegisteredClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
