package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "Ana", "manager", "almacen-api", 5)
	require.NoError(t, err)

	userID, name, role, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "Ana", name)
	assert.Equal(t, "manager", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "Ana", "staff", "almacen-api", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "Ana", "staff", "almacen-api", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "Ana", "staff", "almacen-api", 5)
	assert.Error(t, err)
}
