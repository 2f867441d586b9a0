package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/config"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/coffeechat/coffeechat-api/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		PhoneCodeExpiry:  10 * time.Minute,
	}
}

func newAuthService(db *gorm.DB) *services.AuthService {
	return services.NewAuthService(db, testConfig())
}

func TestSignInUpsertsByEmail(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	resp, err := svc.SignIn("google", &dto.SignInRequest{
		Email: "alice@coffeechat.dev", Nickname: "alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Nickname)

	// Same email again: same user, updated nickname and provider.
	again, err := svc.SignIn("kakao", &dto.SignInRequest{
		Email: "alice@coffeechat.dev", Nickname: "allie",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
	assert.Equal(t, "allie", again.User.Nickname)
	assert.Equal(t, "kakao", again.User.Provider)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestSignInAccessTokenClaims(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	resp, err := svc.SignIn("google", &dto.SignInRequest{
		Email: "alice@coffeechat.dev", Nickname: "alice",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "alice@coffeechat.dev", claims["email"])
}

func TestRefreshRotatesToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	signedIn, err := svc.SignIn("google", &dto.SignInRequest{
		Email: "alice@coffeechat.dev", Nickname: "alice",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: signedIn.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, signedIn.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, signedIn.User.ID, refreshed.User.ID)

	// The presented token was spent by the rotation.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: signedIn.RefreshToken})
	requireCode(t, err, apperr.CodeUnauthorized)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: "bogus"})
	requireCode(t, err, apperr.CodeUnauthorized)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	signedIn, err := svc.SignIn("google", &dto.SignInRequest{
		Email: "alice@coffeechat.dev", Nickname: "alice",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: signedIn.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: signedIn.RefreshToken})
	requireCode(t, err, apperr.CodeUnauthorized)
}

func TestPhoneVerificationFlow(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	user := seedUser(t, db, "alice", "seoul")

	code, err := svc.RequestPhoneCode(user.ID)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	_, err = svc.VerifyPhone(user.ID, "000000")
	requireCode(t, err, apperr.CodeBadRequest)

	verified, err := svc.VerifyPhone(user.ID, code)
	require.NoError(t, err)
	assert.True(t, verified.PhoneVerified)

	// The code is single-use.
	_, err = svc.VerifyPhone(user.ID, code)
	requireCode(t, err, apperr.CodeNotFound)
}

func TestRequestPhoneCodeReplacesPrevious(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	user := seedUser(t, db, "alice", "seoul")

	first, err := svc.RequestPhoneCode(user.ID)
	require.NoError(t, err)
	second, err := svc.RequestPhoneCode(user.ID)
	require.NoError(t, err)

	var pending int64
	require.NoError(t, db.Model(&models.PhoneVerification{}).
		Where("user_id = ?", user.ID).Count(&pending).Error)
	assert.EqualValues(t, 1, pending)

	if first != second {
		_, err = svc.VerifyPhone(user.ID, first)
		requireCode(t, err, apperr.CodeBadRequest)
	}

	_, err = svc.VerifyPhone(user.ID, second)
	require.NoError(t, err)
}

func TestRequestPhoneCodeUnknownUser(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	_, err := svc.RequestPhoneCode(uuid.New())
	requireCode(t, err, apperr.CodeNotFound)
}

func TestVerifyPhoneExpiredCode(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)

	user := seedUser(t, db, "alice", "seoul")

	code, err := svc.RequestPhoneCode(user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.PhoneVerification{}).
		Where("user_id = ?", user.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.VerifyPhone(user.ID, code)
	requireCode(t, err, apperr.CodeBadRequest)
}
