package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantIssueAPIKey(t *testing.T) {
	tn := &Tenant{ID: 1}

	key, err := tn.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.NotEmpty(t, tn.APIKeyHash)
	assert.NotEmpty(t, tn.APIKeyPrefix)
	assert.NotNil(t, tn.APIKeyCreatedAt)
	assert.Nil(t, tn.APIKeyLastUsedAt)
	assert.True(t, tn.HasActiveAPIKey())
	assert.Equal(t, HashAPIKey(key), tn.APIKeyHash)
}

func TestTenantRevokeAPIKey(t *testing.T) {
	tn := &Tenant{ID: 99}
	_, err := tn.IssueAPIKey()
	require.NoError(t, err)

	tn.RevokeAPIKey()

	assert.False(t, tn.HasActiveAPIKey())
	assert.Equal(t, "", tn.APIKeyHash)
	assert.Equal(t, "", tn.APIKeyPrefix)
	assert.NotNil(t, tn.APIKeyRevokedAt)
}

func TestCreateTenantValidation(t *testing.T) {
	_, err := CreateTenant("Da Mario", "not-an-email", "secret123")
	assert.Error(t, err)

	tn, err := CreateTenant("Da Mario", "mario@example.com", "secret123")
	require.NoError(t, err)
	assert.True(t, tn.IsActive())
	assert.True(t, tn.CheckPassword("secret123"))
	assert.False(t, tn.CheckPassword("wrong"))
}
