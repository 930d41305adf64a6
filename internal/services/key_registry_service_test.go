package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"transhub/internal/repository"
)

func setupKeyRegistryService(t *testing.T, db *gorm.DB) *KeyRegistryService {
	t.Helper()
	return NewKeyRegistryService(repository.NewGormTranslationRepository(db), NewDomainService())
}

func TestKeyRegistryService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := setupKeyRegistryService(t, db)
	ctx := context.Background()

	result, err := svc.Register(ctx, []KeyRegistration{
		{Key: "tickets.title", DefaultValue: "Ticket"},
		{Key: "common.greeting", DefaultValue: "Hello, {{name}}!", Params: []string{"name"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Requested)
	assert.Equal(t, 2, result.Registered)
	assert.Equal(t, 0, result.Skipped)

	keys, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	// Module derived from the key when not declared.
	assert.Equal(t, "common", keys[0].Module)
	assert.Equal(t, "tickets", keys[1].Module)

	params := gjson.ParseBytes(keys[0].Params).Array()
	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].String())
}

func TestKeyRegistryService_Register_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := setupKeyRegistryService(t, db)
	ctx := context.Background()

	batch := []KeyRegistration{{Key: "tickets.title", DefaultValue: "Ticket"}}
	_, err := svc.Register(ctx, batch)
	require.NoError(t, err)

	// Re-registering with a different default never overwrites.
	result, err := svc.Register(ctx, []KeyRegistration{{Key: "tickets.title", DefaultValue: "Changed"}})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Registered)
	assert.Equal(t, 1, result.Skipped)

	keys, err := svc.List(ctx, "tickets")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "Ticket", keys[0].DefaultValue)
}

func TestKeyRegistryService_Register_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := setupKeyRegistryService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, nil)
	require.Error(t, err)

	_, err = svc.Register(ctx, []KeyRegistration{{Key: "Bad Key", DefaultValue: "v"}})
	require.Error(t, err)

	_, err = svc.Register(ctx, []KeyRegistration{
		{Key: "tickets.title", DefaultValue: "Ticket", Params: []string{"9bad"}},
	})
	require.Error(t, err)

	// Declared params must appear in the default value.
	_, err = svc.Register(ctx, []KeyRegistration{
		{Key: "tickets.title", DefaultValue: "Ticket", Params: []string{"name"}},
	})
	require.Error(t, err)
}

func TestKeyRegistryService_ListByModule(t *testing.T) {
	db := setupTestDB(t)
	svc := setupKeyRegistryService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, []KeyRegistration{
		{Key: "tickets.title", DefaultValue: "Ticket"},
		{Key: "nav.home", DefaultValue: "Home"},
	})
	require.NoError(t, err)

	keys, err := svc.List(ctx, "nav")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "nav.home", keys[0].Key)
}
