package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWKSServer(t *testing.T, kid string, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": kid,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newJWKSServer(t, "key-1", &key.PublicKey)
	verifier := NewJWKSVerifier(srv.URL)

	token := signToken(t, key, "key-1", jwt.MapClaims{
		"sub": "user_123",
		"exp": time.Now().Add(time.Hour).Unix(),
		"public_metadata": map[string]any{
			"tier": "premium",
		},
	})

	claims, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims.Subject())
	assert.Equal(t, "premium", claims.Map("public_metadata").String("tier"))
}

func TestVerifyExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newJWKSServer(t, "key-1", &key.PublicKey)
	verifier := NewJWKSVerifier(srv.URL)

	token := signToken(t, key, "key-1", jwt.MapClaims{
		"sub": "user_123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err = verifier.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyUnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newJWKSServer(t, "key-1", &key.PublicKey)
	verifier := NewJWKSVerifier(srv.URL)

	token := signToken(t, key, "other-key", jwt.MapClaims{
		"sub": "user_123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyWrongKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newJWKSServer(t, "key-1", &key.PublicKey)
	verifier := NewJWKSVerifier(srv.URL)

	token := signToken(t, otherKey, "key-1", jwt.MapClaims{
		"sub": "user_123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = verifier.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newJWKSServer(t, "key-1", &key.PublicKey)
	verifier := NewJWKSVerifier(srv.URL)

	_, err = verifier.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}
