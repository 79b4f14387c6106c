package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/rental-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/password"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role, userUID string) (string, error) {
	args := m.Called(username, role, userUID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock)
		wantUID    string
		wantErr    error
	}{
		{
			name: "successful registration",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					_, err := uuid.Parse(user.UUID)
					return err == nil &&
						user.Email == "op@example.com" &&
						user.Username == "operador" &&
						user.PasswordHash != "" && user.PasswordHash != "senha123" &&
						user.Role == models.RoleUser
				})).Return("uid-1", nil).Once()
			},
			wantUID: "uid-1",
		},
		{
			name: "duplicate user",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", ErrUserExists).Once()
			},
			wantErr: ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := NewService(repo, new(JwtMakerMock))
			tt.setupMocks(repo)

			got, err := svc.Register(context.Background(), " OP@example.com ", "operador", "senha123")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUID, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hashedPassword, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	testUser := &models.User{
		UUID:         "uid-1",
		Email:        "op@example.com",
		Username:     "operador",
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
		errMsg     string
	}{
		{
			name:     "successful login",
			username: "operador",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "operador").Return(testUser, nil).Once()
				j.On("GenerateToken", "operador", "user", "uid-1").Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
		},
		{
			name:     "user not found",
			username: "ghost",
			password: "password",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "operador",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "operador").Return(testUser, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "token generation error",
			username: "operador",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "operador").Return(testUser, nil).Once()
				j.On("GenerateToken", "operador", "user", "uid-1").Return("", errors.New("token error")).Once()
			},
			errMsg: "token error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := NewService(repo, jwtMock)
			tt.setupMocks(repo, jwtMock)

			token, role, err := svc.Login(context.Background(), tt.username, tt.password)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, models.RoleUser, role)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	jwtMock := new(JwtMakerMock)
	svc := NewService(new(UserRepoMock), jwtMock)

	jwtMock.On("ParseToken", "good").Return(&customjwt.CustomClaims{
		Username: "operador", Role: "admin", UserUID: "uid-1",
	}, nil).Once()
	jwtMock.On("ParseToken", "bad").Return(nil, customjwt.ErrInvalidToken).Once()

	user, err := svc.ValidateToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "operador", user.Username)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "uid-1", user.UUID)

	_, err = svc.ValidateToken(context.Background(), "bad")
	require.ErrorIs(t, err, customjwt.ErrInvalidToken)
}
