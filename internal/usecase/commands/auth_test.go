//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-checkout/internal/domain/user"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/pkg/jwt"
	"hotel-checkout/internal/pkg/password"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/internal/usecase/queries"
	"hotel-checkout/tests/common/builder"
	"hotel-checkout/tests/common/memstore"

	"github.com/stretchr/testify/suite"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	store *memstore.Store
	jwt   *jwt.Service
	cmds  commands.AuthCommands
	staff *queries.AuthorizedUserView
	hash  string
}

func (s *AuthCommandsTestSuite) SetupSuite() {
	hash, err := password.HashPassword("password123")
	s.Require().NoError(err)
	s.hash = hash
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.store = memstore.New()
	s.jwt = jwt.NewService("auth-commands-test-secret", time.Minute, time.Hour)
	s.cmds = commands.NewAuthCommands(s.store, s.store, s.jwt)

	s.staff = builder.NewUserBuilder().
		WithEmail("support@example.com").
		WithRole(user.RoleSupport.String()).
		BuildReadModel()
	s.store.PutUser(*s.staff, s.hash)
}

func (s *AuthCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) TestLogin() {
	login := builder.NewAuthBuilder().AsSupport().BuildDTO()

	s.Run("正常系: スタッフのロールがトークンに入る", func() {
		res, err := s.cmds.Login(context.Background(), login)
		s.Require().NoError(err)

		s.Equal(s.staff.ID, res.UserID)
		s.Equal(user.RoleSupport, res.Role)
		claims, err := s.jwt.ValidateToken(res.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeAccess, claims.TokenType)
		s.Equal(user.RoleSupport.String(), claims.Role)
		s.Equal(1, s.store.Logins(s.staff.ID))
	})

	s.Run("正常系: 最終ログイン日時の更新失敗はログインを妨げない", func() {
		s.store.Fail["users.update_last_login"] = errors.New("db down")

		_, err := s.cmds.Login(context.Background(), login)
		s.Require().NoError(err)
		s.Zero(s.store.Logins(s.staff.ID))
	})

	s.Run("異常系", func() {
		cases := []struct {
			name    string
			prepare func()
			mutate  func(*builder.AuthBuilder)
			want    error
		}{
			{name: "パスワード不一致", mutate: func(b *builder.AuthBuilder) { b.Password = "password124" }, want: commands.ErrInvalidCredentials},
			{name: "未登録のメールアドレス", mutate: func(b *builder.AuthBuilder) { b.Email = "nobody@example.com" }, want: commands.ErrInvalidCredentials},
			{name: "不正な形式のメールアドレス", mutate: func(b *builder.AuthBuilder) { b.Email = "nobody" }, want: commands.ErrAuthenticationFailed},
			{
				name: "無効化されたアカウント",
				prepare: func() {
					inactive := *s.staff
					inactive.IsActive = false
					s.store.PutUser(inactive, s.hash)
				},
				want: commands.ErrUserInactive,
			},
			{name: "ストア障害", prepare: func() { s.store.Fail["users.find"] = errors.New("timeout") }, want: commands.ErrInvalidCredentials},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				if tc.prepare != nil {
					tc.prepare()
				}
				b := builder.NewAuthBuilder().AsSupport()
				if tc.mutate != nil {
					b.With(tc.mutate)
				}

				_, err := s.cmds.Login(context.Background(), b.BuildDTO())
				s.True(errs.Is(err, tc.want), "got %v", err)
			})
		}
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	refresh := func(role user.Role) string {
		token, err := s.jwt.GenerateRefreshToken(s.staff.ID, role)
		s.Require().NoError(err)
		return token
	}

	s.Run("正常系: 新しいトークンペアを発行する", func() {
		pair, err := s.cmds.RefreshToken(context.Background(), refresh(user.RoleSupport))
		s.Require().NoError(err)

		claims, err := s.jwt.ValidateToken(pair.RefreshToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeRefresh, claims.TokenType)
	})

	s.Run("正常系: 降格したアカウントには現在のロールを付与する", func() {
		demoted := *s.staff
		demoted.Role = user.RoleCustomer.String()
		s.store.PutUser(demoted, s.hash)

		pair, err := s.cmds.RefreshToken(context.Background(), refresh(user.RoleSupport))
		s.Require().NoError(err)

		claims, err := s.jwt.ValidateToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal(user.RoleCustomer.String(), claims.Role)
	})

	s.Run("異常系: アクセストークンでは更新できない", func() {
		access, err := s.jwt.GenerateAccessToken(s.staff.ID, user.RoleSupport)
		s.Require().NoError(err)

		_, err = s.cmds.RefreshToken(context.Background(), access)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("異常系: 不正なトークン", func() {
		_, err := s.cmds.RefreshToken(context.Background(), "not-a-jwt")
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("異常系: 削除されたアカウント", func() {
		s.store = memstore.New()
		s.cmds = commands.NewAuthCommands(s.store, s.store, s.jwt)

		_, err := s.cmds.RefreshToken(context.Background(), refresh(user.RoleSupport))
		s.True(errs.Is(err, commands.ErrUserNotFound))
	})

	s.Run("異常系: 無効化されたアカウント", func() {
		inactive := *s.staff
		inactive.IsActive = false
		s.store.PutUser(inactive, s.hash)

		_, err := s.cmds.RefreshToken(context.Background(), refresh(user.RoleSupport))
		s.True(errs.Is(err, commands.ErrUserInactive))
	})
}
