package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"transhub/internal/config"
	"transhub/internal/models"
	"transhub/internal/repository"
	"transhub/internal/utils"
)

func setupExportService(t *testing.T, db *gorm.DB) *ExportService {
	t.Helper()
	return NewExportService(
		repository.NewGormTranslationRepository(db),
		NewDomainService(),
		config.NewSystemSettingsManager(),
	)
}

func TestExportService_NestedDocument(t *testing.T) {
	db := setupTestDB(t)
	svc := setupExportService(t, db)
	ctx := context.Background()

	repo := repository.NewGormTranslationRepository(db)
	require.NoError(t, repo.BulkCreate(ctx, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "tickets.status.open", Language: "en", Value: "Open", Module: "tickets"},
		{Key: "nav.home", Language: "en", Value: "Home", Module: "nav"},
		{Key: "nav.home", Language: "pt-BR", Value: "Início", Module: "nav"},
	}))

	result, err := svc.Export(ctx, ExportParams{Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, utils.EncodingIdentity, result.Encoding)
	assert.Equal(t, 3, result.Count)

	doc := gjson.ParseBytes(result.Payload)
	assert.Equal(t, "Ticket", doc.Get("tickets.title").String())
	assert.Equal(t, "Open", doc.Get("tickets.status.open").String())
	// Other languages never leak into the document.
	assert.Equal(t, "Home", doc.Get("nav.home").String())
}

func TestExportService_ModuleFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := setupExportService(t, db)
	ctx := context.Background()

	repo := repository.NewGormTranslationRepository(db)
	require.NoError(t, repo.BulkCreate(ctx, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "nav.home", Language: "en", Value: "Home", Module: "nav"},
	}))

	result, err := svc.Export(ctx, ExportParams{Language: "en", Module: "nav"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	doc := gjson.ParseBytes(result.Payload)
	assert.True(t, doc.Get("nav.home").Exists())
	assert.False(t, doc.Get("tickets").Exists())
}

func TestExportService_TenantShadowing(t *testing.T) {
	db := setupTestDB(t)
	svc := setupExportService(t, db)
	ctx := context.Background()

	repo := repository.NewGormTranslationRepository(db)
	require.NoError(t, repo.BulkCreate(ctx, []models.Translation{
		{Key: "tickets.title", Language: "en", Value: "Ticket", Module: "tickets"},
		{Key: "tickets.status", Language: "en", Value: "Status", Module: "tickets"},
		{Key: "tickets.title", Language: "en", Value: "Acme Ticket", Module: "tickets", TenantID: "acme"},
	}))

	result, err := svc.Export(ctx, ExportParams{Language: "en", TenantID: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	doc := gjson.ParseBytes(result.Payload)
	assert.Equal(t, "Acme Ticket", doc.Get("tickets.title").String())
	assert.Equal(t, "Status", doc.Get("tickets.status").String())

	// Anonymous exports keep the global value.
	result, err = svc.Export(ctx, ExportParams{Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Ticket", gjson.ParseBytes(result.Payload).Get("tickets.title").String())
}

func TestExportService_Compression(t *testing.T) {
	db := setupTestDB(t)
	svc := setupExportService(t, db)
	ctx := context.Background()

	// A payload large enough to cross the compression threshold.
	repo := repository.NewGormTranslationRepository(db)
	rows := make([]models.Translation, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, models.Translation{
			Key:      fmt.Sprintf("tickets.field%02d", i),
			Language: "en",
			Value:    strings.Repeat("long value ", 10),
			Module:   "tickets",
		})
	}
	require.NoError(t, repo.BulkCreate(ctx, rows))

	result, err := svc.Export(ctx, ExportParams{Language: "en", Encoding: utils.EncodingGzip})
	require.NoError(t, err)
	assert.Equal(t, utils.EncodingGzip, result.Encoding)

	reader, err := gzip.NewReader(bytes.NewReader(result.Payload))
	require.NoError(t, err)
	defer reader.Close()
	var decompressed bytes.Buffer
	_, err = decompressed.ReadFrom(reader)
	require.NoError(t, err)
	assert.Equal(t, 40, len(gjson.ParseBytes(decompressed.Bytes()).Get("tickets").Map()))
}

func TestExportService_SmallPayloadStaysIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := setupExportService(t, db)
	ctx := context.Background()

	repo := repository.NewGormTranslationRepository(db)
	require.NoError(t, repo.BulkCreate(ctx, []models.Translation{
		{Key: "nav.home", Language: "en", Value: "Home", Module: "nav"},
	}))

	result, err := svc.Export(ctx, ExportParams{Language: "en", Encoding: utils.EncodingGzip})
	require.NoError(t, err)
	assert.Equal(t, utils.EncodingIdentity, result.Encoding)
	assert.True(t, gjson.ValidBytes(result.Payload))
}

func TestExportService_Rejections(t *testing.T) {
	db := setupTestDB(t)
	svc := setupExportService(t, db)
	ctx := context.Background()

	_, err := svc.Export(ctx, ExportParams{Language: "xx"})
	require.Error(t, err)
}
