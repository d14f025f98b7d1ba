package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSessionTokenCodec_RoundTrip(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512", ""} {
		t.Run(alg, func(t *testing.T) {
			codec, err := NewSessionTokenCodec(testSecret, alg)
			require.NoError(t, err)

			session := domain.NewSession(time.Hour)
			token, err := codec.Encode(session)
			require.NoError(t, err)

			id, err := codec.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, session.ID, id)
		})
	}
}

func TestSessionTokenCodec_Rejects(t *testing.T) {
	codec, err := NewSessionTokenCodec(testSecret, "HS256")
	require.NoError(t, err)

	session := domain.NewSession(time.Hour)
	token, err := codec.Encode(session)
	require.NoError(t, err)

	otherSecret, err := NewSessionTokenCodec("another-secret-another-secret-xx", "HS256")
	require.NoError(t, err)
	otherToken, err := otherSecret.Encode(session)
	require.NoError(t, err)

	otherAlg, err := NewSessionTokenCodec(testSecret, "HS512")
	require.NoError(t, err)
	otherAlgToken, err := otherAlg.Encode(session)
	require.NoError(t, err)

	expiredToken, err := codec.Encode(domain.NewSession(-time.Minute))
	require.NoError(t, err)

	// Signature of one session id over the claims of another.
	forged, err := codec.Encode(domain.NewSession(time.Hour))
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered", tampered},
		{"wrong secret", otherToken},
		{"wrong algorithm", otherAlgToken},
		{"expired", expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestNewSessionTokenCodec_Errors(t *testing.T) {
	_, err := NewSessionTokenCodec("", "HS256")
	assert.Error(t, err)

	_, err = NewSessionTokenCodec(testSecret, "RS256")
	assert.ErrorContains(t, err, "unsupported jwt algorithm")
}
