package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/authdash/internal/auth"
)

func TestInspectToken(t *testing.T) {
	iat := time.Unix(1700000000, 0)
	exp := iat.Add(time.Hour)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "6f1c",
		"jti":  "abc",
		"type": "access",
		"iat":  iat.Unix(),
		"exp":  exp.Unix(),
	}).SignedString([]byte("someone else's secret"))
	require.NoError(t, err)

	info, err := auth.InspectToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "6f1c", info.Subject)
	assert.Equal(t, "abc", info.ID)
	assert.Equal(t, "access", info.Type)
	assert.True(t, info.IssuedAt.Equal(iat))
	assert.True(t, info.ExpiresAt.Equal(exp))
}

func TestInspectTokenOpaque(t *testing.T) {
	_, err := auth.InspectToken("T1")
	assert.Error(t, err)
}

func TestUserJSONRoundTrip(t *testing.T) {
	var u auth.User
	require.NoError(t, u.UnmarshalJSON([]byte(`{"username":"a","email":"a@x.com","roles":["x"]}`)))
	assert.Equal(t, "a", u.Username)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Contains(t, u.Extra, "roles")

	out, err := u.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"a","email":"a@x.com","roles":["x"]}`, string(out))
}
