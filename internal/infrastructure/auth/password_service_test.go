package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, svc.Verify(hash, "correct horse battery staple"))
	assert.False(t, svc.Verify(hash, "wrong password"))
	assert.False(t, svc.Verify("not-a-bcrypt-hash", "correct horse battery staple"))
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("secret")
	require.NoError(t, err)
	second, err := svc.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, svc.Verify(first, "secret"))
	assert.True(t, svc.Verify(second, "secret"))
}
