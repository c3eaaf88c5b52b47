package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, "momentree")
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := NewCodec([]byte("too-short"), "momentree")
		require.ErrorIs(t, err, ErrWeakSecret)
	})

	t.Run("accepts 32 byte secrets", func(t *testing.T) {
		codec, err := NewCodec(testSecret, "momentree")
		require.NoError(t, err)
		require.Equal(t, "momentree", codec.Issuer())
	})
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC().Truncate(time.Second)

	for _, category := range []Category{CategoryAccess, CategoryRefresh} {
		t.Run(string(category), func(t *testing.T) {
			token, err := codec.Issue("member-1", "KAKAO 1234", "USER", category, time.Hour, now)
			require.NoError(t, err)

			claims, err := codec.Decode(token)
			require.NoError(t, err)
			require.Equal(t, "member-1", claims.Subject)
			require.Equal(t, "KAKAO 1234", claims.Username)
			require.Equal(t, "USER", claims.Role)
			require.Equal(t, category, claims.Category)
			require.Equal(t, now, claims.IssuedAt.Time)
			require.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time)
		})
	}
}

func TestCodecDecode(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC()

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := codec.Decode("not-a-token")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("rejects a foreign signature", func(t *testing.T) {
		other, err := NewCodec([]byte("ffffffffffffffffffffffffffffffff"), "momentree")
		require.NoError(t, err)

		token, err := other.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, time.Hour, now)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, ErrSignature)
	})

	t.Run("rejects a tampered payload", func(t *testing.T) {
		token, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, time.Hour, now)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]

		_, err = codec.Decode(tampered)
		require.Error(t, err)
	})

	t.Run("decode ignores expiry", func(t *testing.T) {
		token, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, -time.Hour, now)
		require.NoError(t, err)

		claims, err := codec.Decode(token)
		require.NoError(t, err)
		require.True(t, claims.Expired(now))
	})
}

func TestClaimsExpired(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("zero ttl expires immediately", func(t *testing.T) {
		token, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, 0, now)
		require.NoError(t, err)

		claims, err := codec.Decode(token)
		require.NoError(t, err)
		require.True(t, claims.Expired(now))
	})

	t.Run("not expired before the boundary", func(t *testing.T) {
		token, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, time.Minute, now)
		require.NoError(t, err)

		claims, err := codec.Decode(token)
		require.NoError(t, err)
		require.False(t, claims.Expired(now))
		require.True(t, claims.Expired(now.Add(time.Minute)))
	})
}

func TestCodecVerify(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC()

	access, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, time.Hour, now)
	require.NoError(t, err)
	refresh, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryRefresh, time.Hour, now)
	require.NoError(t, err)

	t.Run("access token verifies as access", func(t *testing.T) {
		claims, err := codec.Verify(access, CategoryAccess, now)
		require.NoError(t, err)
		require.Equal(t, CategoryAccess, claims.Category)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := codec.Verify(access, CategoryRefresh, now)
		require.ErrorIs(t, err, ErrCategory)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := codec.Verify(refresh, CategoryAccess, now)
		require.ErrorIs(t, err, ErrCategory)
	})

	t.Run("expired beats category", func(t *testing.T) {
		stale, err := codec.Issue("member-1", "KAKAO 1234", "USER", CategoryAccess, 0, now)
		require.NoError(t, err)

		_, err = codec.Verify(stale, CategoryRefresh, now)
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestStripBearer(t *testing.T) {
	t.Parallel()

	token, ok := StripBearer("Bearer abc.def.ghi")
	require.True(t, ok)
	require.Equal(t, "abc.def.ghi", token)

	_, ok = StripBearer("abc.def.ghi")
	require.False(t, ok)

	_, ok = StripBearer("bearer abc.def.ghi")
	require.False(t, ok)

	_, ok = StripBearer("Bearer ")
	require.False(t, ok)
}
