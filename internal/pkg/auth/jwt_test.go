package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

func newTestService(secret string, previous ...string) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      secret,
		PreviousKeys:   previous,
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test-issuer",
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestService("secret")

	token, expiresIn, err := svc.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService("secret")
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.Issue(7)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = svc.Verify(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc := newTestService("secret")
	token, _, err := svc.Issue(1)
	require.NoError(t, err)

	other := newTestService("another-secret")
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	_, err = svc.Verify(parts[0] + "." + parts[1] + ".AAAA")
	assert.ErrorIs(t, err, ErrInvalidToken)

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		_, err = svc.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, bad)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	svc := newTestService("secret")

	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeyRotation(t *testing.T) {
	old := newTestService("old-secret")
	token, _, err := old.Issue(9)
	require.NoError(t, err)

	rotated := newTestService("new-secret", "old-secret")
	claims, err := rotated.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)

	retired := newTestService("new-secret")
	_, err = retired.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	fresh, _, err := rotated.Issue(9)
	require.NoError(t, err)
	_, err = retired.Verify(fresh)
	assert.NoError(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("bearer   xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc.def.ghi"} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidFormat, header)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
	assert.False(t, CheckPassword("not-a-hash", "secret1"))

	_, err = HashPassword(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidationFailed))
}
