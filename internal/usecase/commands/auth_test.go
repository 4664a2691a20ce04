//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"carshare/internal/domain/user"
	"carshare/internal/infra"
	"carshare/internal/pkg/jwt"
	"carshare/internal/pkg/password"
	"carshare/internal/usecase/commands"
	"carshare/internal/usecase/shared"
	"carshare/tests/common/builder"
	queriesmock "carshare/tests/mock/queries"
	sharedmock "carshare/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUow       *sharedmock.MockUnitOfWork
	mockTx        *sharedmock.MockTx
	mockUsers     *sharedmock.MockUserRepository
	mockReadStore *queriesmock.MockUserReadStore
	jwtService    *jwt.Service
	cmds          commands.AuthCommands
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.mockTx = sharedmock.NewMockTx(s.ctrl)
	s.mockUsers = sharedmock.NewMockUserRepository(s.ctrl)
	s.mockReadStore = queriesmock.NewMockUserReadStore(s.ctrl)
	s.jwtService = jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	s.mockTx.EXPECT().Users().Return(s.mockUsers).AnyTimes()
	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()

	s.cmds = commands.NewAuthCommands(s.mockUow, s.mockReadStore, s.jwtService)
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthCommandsTestSuite) TestRegister() {
	req := builder.NewAuthBuilder().BuildRegisterDTO()

	s.Run("success: new account starts as an active member", func() {
		view := builder.NewUserBuilder().BuildReadModel()

		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, u *user.User) (uuid.UUID, error) {
				s.Equal(req.Email, u.Email().Value())
				s.Equal(user.RoleMember, u.Role())
				s.True(u.IsActive())
				s.NoError(password.ComparePassword(u.PasswordHash(), req.Password))
				return u.ID(), nil
			})
		s.mockReadStore.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(view, nil)

		got, err := s.cmds.Register(context.Background(), req)
		s.NoError(err)
		s.Equal(view, got)
	})

	s.Run("error: email already registered", func() {
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey))

		_, err := s.cmds.Register(context.Background(), req)
		s.ErrorIs(err, commands.ErrEmailTaken)
	})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	req := builder.NewAuthBuilder().BuildLoginDTO()

	hash, err := password.HashPassword(req.Password)
	if err != nil {
		s.T().Fatal(err)
	}

	s.Run("success: returns a token pair carrying the user claims", func() {
		view := builder.NewUserBuilder().BuildReadModel()

		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(view, hash, nil)
		s.mockUsers.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), view.ID).Return(nil)

		result, err := s.cmds.Login(context.Background(), req)
		s.NoError(err)
		s.Equal(view.ID, result.UserID)

		claims, err := s.jwtService.ValidateToken(result.TokenPair.AccessToken)
		s.NoError(err)
		s.Equal(view.ID, claims.UserID)
		s.Equal(jwt.TokenTypeAccess, claims.TokenType)

		claims, err = s.jwtService.ValidateToken(result.TokenPair.RefreshToken)
		s.NoError(err)
		s.Equal(jwt.TokenTypeRefresh, claims.TokenType)
	})

	s.Run("success: last_login bookkeeping failure does not fail the login", func() {
		view := builder.NewUserBuilder().BuildReadModel()

		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(view, hash, nil)
		s.mockUsers.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), view.ID).
			Return(infra.WrapRepoErr("update last login", nil))

		result, err := s.cmds.Login(context.Background(), req)
		s.NoError(err)
		s.NotNil(result.TokenPair)
	})

	s.Run("error: wrong password", func() {
		view := builder.NewUserBuilder().BuildReadModel()
		otherHash, hashErr := password.HashPassword("different-password")
		s.Require().NoError(hashErr)

		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(view, otherHash, nil)

		_, err := s.cmds.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: lookup failures read as invalid credentials", func() {
		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), req.Email).
			Return(nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound))

		_, err := s.cmds.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: inactive account", func() {
		view := builder.NewUserBuilder().AsInactive().BuildReadModel()

		s.mockReadStore.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(view, hash, nil)

		_, err := s.cmds.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrUserInactive)
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	userBuilder := builder.NewUserBuilder()
	view := userBuilder.BuildReadModel()

	refreshToken, err := s.jwtService.GenerateRefreshToken(view.ID, user.RoleMember)
	if err != nil {
		s.T().Fatal(err)
	}

	s.Run("success: issues a fresh pair for an active user", func() {
		s.mockReadStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		pair, err := s.cmds.RefreshToken(context.Background(), refreshToken)
		s.NoError(err)
		s.NotEmpty(pair.AccessToken)
		s.NotEmpty(pair.RefreshToken)
	})

	s.Run("error: access token is not accepted for refresh", func() {
		accessToken, tokenErr := s.jwtService.GenerateAccessToken(view.ID, user.RoleMember)
		s.Require().NoError(tokenErr)

		_, err := s.cmds.RefreshToken(context.Background(), accessToken)
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("error: user deactivated since the token was issued", func() {
		inactive := builder.NewUserBuilder().AsInactive().BuildReadModel()
		inactive.ID = view.ID

		s.mockReadStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(inactive, nil)

		_, err := s.cmds.RefreshToken(context.Background(), refreshToken)
		s.ErrorIs(err, commands.ErrUserInactive)
	})

	s.Run("error: garbage token", func() {
		_, err := s.cmds.RefreshToken(context.Background(), "not-a-token")
		s.ErrorIs(err, commands.ErrTokenValidation)
	})
}
