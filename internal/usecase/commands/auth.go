package commands

import (
	"context"
	"log/slog"

	"hotel-checkout/internal/domain/user"
	reqdto "hotel-checkout/internal/handler/dto/request"
	"hotel-checkout/internal/infra"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/jwt"
	"hotel-checkout/internal/pkg/password"
	"hotel-checkout/internal/usecase/queries"
	"hotel-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthCommands signs in customers, who then see their bookings, and staff,
// who additionally reach the support routes.
type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	account, err := a.authenticate(ctx, credentials)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(account.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	pair, err := a.issue(account.ID, role)
	if err != nil {
		return nil, err
	}

	// last_login is bookkeeping; a failed write does not undo the sign-in.
	if err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, account.ID)
	}); err != nil {
		slog.WarnContext(ctx, "last login not recorded", "user_id", account.ID, "error", err)
	}

	return &LoginResult{UserID: account.ID, Role: role, TokenPair: pair}, nil
}

// RefreshToken reissues both tokens with the account's current role, so a
// demoted staff member loses support access at the next refresh.
func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	account, err := a.readStore.FindByID(ctx, claims.UserID)
	switch {
	case infra.IsKind(err, infra.KindNotFound), err == nil && account == nil:
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	case !account.IsActive:
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(account.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if role.String() != claims.Role {
		slog.InfoContext(ctx, "role changed since last token", "user_id", account.ID, "from", claims.Role, "to", role)
	}
	return a.issue(account.ID, role)
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refresh, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// authenticate spends a bcrypt comparison on every path so response time
// does not reveal which emails have accounts.
func (a *authCommandsImpl) authenticate(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	account, hash, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	switch {
	case err != nil:
		password.CompareDummy(credentials.Password().Value())
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.WarnContext(ctx, "user lookup failed", "error", err)
		}
		return nil, ErrInvalidCredentials
	case account == nil:
		password.CompareDummy(credentials.Password().Value())
		return nil, ErrUserNotFound
	case !account.IsActive:
		password.CompareDummy(credentials.Password().Value())
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
