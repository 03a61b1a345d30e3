package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTokenSvc(t *testing.T) *Service {
	t.Helper()
	return New(nil, hasherCfg())
}

// parseAccess разбирает access-токен секретом access-токенов.
func parseAccess(t *testing.T, svc *Service, tokenStr string) *accessClaims {
	t.Helper()

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(*jwt.Token) (interface{}, error) {
			return []byte(svc.cfg.AccessTokenSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*accessClaims)
	require.True(t, ok)
	return claims
}

// parseRefresh разбирает refresh-токен секретом refresh-токенов.
func parseRefresh(t *testing.T, svc *Service, tokenStr string) *refreshClaims {
	t.Helper()

	token, err := jwt.ParseWithClaims(tokenStr, &refreshClaims{},
		func(*jwt.Token) (interface{}, error) {
			return []byte(svc.cfg.RefreshTokenSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*refreshClaims)
	require.True(t, ok)
	return claims
}

func TestIssueTokenPair_JTIBindsPair(t *testing.T) {
	t.Parallel()

	svc := newTokenSvc(t)
	userID := uuid.New()

	pair, err := svc.issueTokenPair(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access := parseAccess(t, svc, pair.AccessToken)
	refresh := parseRefresh(t, svc, pair.RefreshToken)

	// Инвариант пары: jti access-токена равен клейму id refresh-токена.
	require.NotEmpty(t, access.RegisteredClaims.ID)
	require.Equal(t, access.RegisteredClaims.ID, refresh.ID)

	require.Equal(t, userID.String(), access.UserID)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), pair.AccessExpiresAt, 2*time.Second)
}

func TestIssueTokenPair_ClientIDIndependentOfJTI(t *testing.T) {
	t.Parallel()

	svc := newTokenSvc(t)

	pair, err := svc.issueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	access := parseAccess(t, svc, pair.AccessToken)
	require.NotEmpty(t, access.ClientID)
	require.NotEqual(t, access.RegisteredClaims.ID, access.ClientID)

	// Оба идентификатора — валидные uuid.
	_, err = uuid.Parse(access.RegisteredClaims.ID)
	require.NoError(t, err)
	_, err = uuid.Parse(access.ClientID)
	require.NoError(t, err)
}

func TestIssueTokenPair_FreshJTIPerPair(t *testing.T) {
	t.Parallel()

	svc := newTokenSvc(t)

	p1, err := svc.issueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)
	p2, err := svc.issueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NotEqual(t,
		parseAccess(t, svc, p1.AccessToken).RegisteredClaims.ID,
		parseAccess(t, svc, p2.AccessToken).RegisteredClaims.ID,
	)
}

func TestIssueTokenPair_DistinctSecrets(t *testing.T) {
	t.Parallel()

	svc := newTokenSvc(t)

	pair, err := svc.issueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	// Refresh-токен не проходит проверку секретом access-токенов...
	_, _, err = svc.validateAccessToken(pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)

	// ...и наоборот.
	_, err = svc.validateRefreshToken(pair.AccessToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueTokenPair_EmptySecret(t *testing.T) {
	t.Parallel()

	cfg := hasherCfg()
	cfg.AccessTokenSecret = ""
	svc := New(nil, cfg)

	_, err := svc.issueTokenPair(context.Background(), uuid.New())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSigningFailed)

	cfg = hasherCfg()
	cfg.RefreshTokenSecret = ""
	svc = New(nil, cfg)

	_, err = svc.issueTokenPair(context.Background(), uuid.New())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSigningFailed)
}

func TestValidateAccessToken_OKAndGarbage(t *testing.T) {
	t.Parallel()

	svc := newTokenSvc(t)
	userID := uuid.New()

	pair, err := svc.issueTokenPair(context.Background(), userID)
	require.NoError(t, err)

	uid, clientID, err := svc.validateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, userID, uid)
	require.NotEmpty(t, clientID)

	_, _, err = svc.validateAccessToken("not-a-jwt")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokens_Expired(t *testing.T) {
	t.Parallel()

	svc := newTokenSvc(t)

	// Выпускаем пару "в прошлом": оба токена уже истекли (с запасом на leeway).
	issuedAt := time.Now().Add(-48 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	pair, err := svc.issueTokenPair(context.Background(), uuid.New())
	require.NoError(t, err)

	svc.now = time.Now

	_, _, err = svc.validateAccessToken(pair.AccessToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.validateRefreshToken(pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestIssueTokenPair_DeterministicUnderInjectedSources(t *testing.T) {
	t.Parallel()

	seed := bytes.Repeat([]byte{0x42, 0x17, 0xa5, 0x03}, 16)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	issue := func() string {
		svc := newTokenSvc(t)
		svc.now = func() time.Time { return fixed }
		svc.rnd = bytes.NewReader(seed)

		pair, err := svc.issueTokenPair(context.Background(), uuid.Nil)
		require.NoError(t, err)
		return pair.AccessToken + "|" + pair.RefreshToken
	}

	// Одинаковые часы и источник случайности — одинаковая пара.
	require.Equal(t, issue(), issue())
}
