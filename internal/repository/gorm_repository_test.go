package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transhub/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{PrepareStmt: false})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Translation{},
		&models.TranslationKey{},
		&models.TranslationAudit{},
	))
	return db
}

func seedTranslations(t *testing.T, repo *GormTranslationRepository, rows []models.Translation) {
	t.Helper()
	require.NoError(t, repo.BulkCreate(context.Background(), rows))
}

func TestFindByKey_TenantFallback(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	seedTranslations(t, repo, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "tickets.title", Language: "en", Value: "Acme Ticket", Module: "tickets", TenantID: "acme"},
		{Key: "tickets.status", Language: "en", Value: "Status", Module: "tickets"},
	})

	got, err := repo.FindByKey(ctx, "tickets.title", "en", "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ticket", got.Value)

	// Tenants without an override fall back to the global row.
	got, err = repo.FindByKey(ctx, "tickets.status", "en", "acme")
	require.NoError(t, err)
	assert.Equal(t, "Status", got.Value)

	got, err = repo.FindByKey(ctx, "tickets.title", "en", "")
	require.NoError(t, err)
	assert.Equal(t, "Ticket", got.Value)

	_, err = repo.FindByKey(ctx, "tickets.unknown", "en", "acme")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByID_TenantNarrowing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	row := models.Translation{Key: "tickets.title", Language: "en", Value: "Acme Ticket", Module: "tickets", TenantID: "acme"}
	require.NoError(t, repo.Create(ctx, &row))

	got, err := repo.FindByID(ctx, row.ID, "acme")
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)

	// Another tenant's id never resolves the row.
	_, err = repo.FindByID(ctx, row.ID, "rival")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// No tenant narrowing resolves any row.
	_, err = repo.FindByID(ctx, row.ID, "")
	require.NoError(t, err)
}

func TestFindExact_NoFallback(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	seedTranslations(t, repo, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
	})

	got, err := repo.FindExact(ctx, "tickets.title", "en", models.GlobalScope())
	require.NoError(t, err)
	assert.Equal(t, "Ticket", got.Value)

	_, err = repo.FindExact(ctx, "tickets.title", "en", models.TenantScope("acme"))
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdate_VersionCAS(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	row := models.Translation{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"}
	require.NoError(t, repo.Create(ctx, &row))
	assert.Equal(t, 1, row.Version)

	updated := row
	updated.Value = "Issue"
	updated.Version = 2
	updated.UpdatedBy = "editor"
	require.NoError(t, repo.Update(ctx, &updated, 1))

	var persisted models.Translation
	require.NoError(t, db.First(&persisted, "id = ?", row.ID).Error)
	assert.Equal(t, "Issue", persisted.Value)
	assert.Equal(t, 2, persisted.Version)

	// A writer still holding version 1 loses the race.
	stale := row
	stale.Value = "Stale"
	stale.Version = 2
	err := repo.Update(ctx, &stale, 1)
	require.ErrorIs(t, err, ErrVersionConflict)

	// A missing row is distinguishable from a lost race.
	missing := updated
	missing.ID = "no-such-id"
	err = repo.Update(ctx, &missing, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdate_TenantGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	row := models.Translation{Key: "tickets.title", Language: "en", Value: "Acme Ticket", Module: "tickets", TenantID: "acme"}
	require.NoError(t, repo.Create(ctx, &row))

	// A caller in another tenant cannot touch the row, and the failure reads
	// as not-found rather than a version conflict.
	foreign := row
	foreign.TenantID = "rival"
	foreign.Value = "Hijacked"
	foreign.Version = 2
	err := repo.Update(ctx, &foreign, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var persisted models.Translation
	require.NoError(t, db.First(&persisted, "id = ?", row.ID).Error)
	assert.Equal(t, "Acme Ticket", persisted.Value)
	assert.Equal(t, 1, persisted.Version)

	// The owner still updates normally.
	owned := row
	owned.Value = "Acme Issue"
	owned.Version = 2
	require.NoError(t, repo.Update(ctx, &owned, 1))
}

func TestBulkUpdate_RollsBackOnConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	seedTranslations(t, repo, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "tickets.status", Language: "en", Value: "Status", Module: "tickets"},
	})

	var rows []models.Translation
	require.NoError(t, db.Order("translations.key").Find(&rows).Error)
	rows[0].Value = "Issue"
	rows[0].Version = 2
	rows[1].Value = "State"
	rows[1].Version = 5 // expects stored version 4, which does not exist

	err := repo.BulkUpdate(ctx, rows)
	require.ErrorIs(t, err, ErrVersionConflict)

	// The batch is atomic: the first row's update rolled back too.
	var persisted models.Translation
	require.NoError(t, db.Where("translations.key = ?", "tickets.status").First(&persisted).Error)
	assert.Equal(t, "Status", persisted.Value)
	var persistedTitle models.Translation
	require.NoError(t, db.Where("translations.key = ?", "tickets.title").First(&persistedTitle).Error)
	assert.Equal(t, "Ticket", persistedTitle.Value)
}

func TestSearch_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	seedTranslations(t, repo, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "tickets.title", Language: "pt-BR", Value: "Chamado", Module: "tickets"},
		{Key: "nav.ticket_count", Language: "en", Value: "Open items", Module: "nav"},
		{Key: "tickets.title", Language: "en", Value: "Acme Ticket", Module: "tickets", TenantID: "acme"},
	})

	rows, err := repo.Search(ctx, "ticket", SearchFilters{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = repo.Search(ctx, "ticket", SearchFilters{TenantID: "acme"})
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	rows, err = repo.Search(ctx, "ticket", SearchFilters{Language: "pt-BR"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chamado", rows[0].Value)

	rows, err = repo.Search(ctx, "ticket", SearchFilters{Module: "nav"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = repo.Search(ctx, "ticket", SearchFilters{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFindMissingKeys(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	_, err := repo.RegisterKeys(ctx, []models.TranslationKey{
		{Key: "tickets.title", Module: "tickets", DefaultValue: "Ticket", Priority: 1},
		{Key: "tickets.status", Module: "tickets", DefaultValue: "Status", Priority: 10},
		{Key: "nav.home", Module: "nav", DefaultValue: "Home"},
	})
	require.NoError(t, err)

	seedTranslations(t, repo, []models.Translation{
		{Key: "tickets.title", Language: "pt-BR", Value: "Chamado", Module: "tickets"},
		{Key: "nav.home", Language: "pt-BR", Value: "Início", Module: "nav", TenantID: "acme"},
	})

	// Globally only tickets.title is covered.
	missing, err := repo.FindMissingKeys(ctx, "pt-BR", "", "")
	require.NoError(t, err)
	require.Len(t, missing, 2)
	// Ordered by priority, highest first.
	assert.Equal(t, "tickets.status", missing[0].Key)
	assert.Equal(t, "nav.home", missing[1].Key)

	// The tenant's override covers nav.home for that tenant.
	missing, err = repo.FindMissingKeys(ctx, "pt-BR", "", "acme")
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "tickets.status", missing[0].Key)

	missing, err = repo.FindMissingKeys(ctx, "pt-BR", "nav", "")
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "nav.home", missing[0].Key)
}

func TestRegisterKeys_SkipsExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	registered, err := repo.RegisterKeys(ctx, []models.TranslationKey{
		{Key: "tickets.title", Module: "tickets", DefaultValue: "Ticket"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, registered)

	registered, err = repo.RegisterKeys(ctx, []models.TranslationKey{
		{Key: "tickets.title", Module: "tickets", DefaultValue: "Changed"},
		{Key: "tickets.status", Module: "tickets", DefaultValue: "Status"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, registered)

	keys, err := repo.ListKeys(ctx, "")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "Status", keys[0].DefaultValue)
	assert.Equal(t, "Ticket", keys[1].DefaultValue)
}

func TestGetTranslationStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTranslationRepository(db)
	ctx := context.Background()

	_, err := repo.RegisterKeys(ctx, []models.TranslationKey{
		{Key: "tickets.title", Module: "tickets", DefaultValue: "Ticket"},
		{Key: "tickets.status", Module: "tickets", DefaultValue: "Status"},
		{Key: "nav.home", Module: "nav", DefaultValue: "Home"},
	})
	require.NoError(t, err)

	seedTranslations(t, repo, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "tickets.status", Language: "en", Value: "Status", Module: "tickets"},
		// A tenant override of an already-counted key must not double count.
		{Key: "tickets.title", Language: "en", Value: "Acme Ticket", Module: "tickets", TenantID: "acme"},
	})

	stats, err := repo.GetTranslationStats(ctx, "acme")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalRegisteredKeys)
	assert.EqualValues(t, 2, stats.KeysPerModule["tickets"])
	assert.EqualValues(t, 1, stats.KeysPerModule["nav"])

	require.Len(t, stats.TranslatedCounts, 1)
	assert.Equal(t, "en", stats.TranslatedCounts[0].Language)
	assert.Equal(t, "tickets", stats.TranslatedCounts[0].Module)
	assert.EqualValues(t, 2, stats.TranslatedCounts[0].Count)
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	oldValue := "Ticket"
	entries := []models.TranslationAudit{
		{TranslationKey: "tickets.title", Language: "en", NewValue: "Ticket",
			Action: models.AuditActionCreate, ChangedBy: "admin", ChangedAt: time.Now().Add(-2 * time.Hour)},
		{TranslationKey: "tickets.title", Language: "en", OldValue: &oldValue, NewValue: "Issue",
			Action: models.AuditActionUpdate, ChangedBy: "editor", ChangedAt: time.Now().Add(-time.Hour)},
		{TranslationKey: "nav.home", Language: "en", NewValue: "Home",
			Action: models.AuditActionCreate, ChangedBy: "admin", ChangedAt: time.Now()},
	}
	require.NoError(t, repo.AppendBatch(ctx, entries))

	history, err := repo.ListByKey(ctx, "tickets.title", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first.
	assert.Equal(t, models.AuditActionUpdate, history[0].Action)
	require.NotNil(t, history[0].OldValue)
	assert.Equal(t, "Ticket", *history[0].OldValue)

	history, err = repo.ListByKey(ctx, "tickets.title", 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	purged, err := repo.PurgeOlderThan(ctx, time.Now().Add(-30*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	history, err = repo.ListByKey(ctx, "tickets.title", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
