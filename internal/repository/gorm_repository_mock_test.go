package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"transhub/internal/models"
)

// setupMockDB opens GORM over a sqlmock connection with the MySQL dialect, so
// the generated SQL can be asserted against the syntax the production MySQL
// deployments actually execute.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{PrepareStmt: false})
	require.NoError(t, err)
	return db, mock
}

func TestUpdate_MySQLVersionGuard(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormTranslationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `translations` SET")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), "t-1", 3, "acme").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.Translation{
		ID: "t-1", TenantID: "acme", Value: "Issue", Version: 4, UpdatedBy: "editor",
	}, 3)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MySQLConflictProbe(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormTranslationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `translations` SET")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), "t-1", 3, "").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Zero rows affected triggers the existence probe that distinguishes a
	// lost race from a missing row. The probe stays within the caller's
	// tenant scope.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `translations` WHERE id = ? AND tenant_id = ?")).
		WithArgs("t-1", "").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	err := repo.Update(context.Background(), &models.Translation{
		ID: "t-1", Value: "Issue", Version: 4, UpdatedBy: "editor",
	}, 3)
	require.ErrorIs(t, err, ErrVersionConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTranslationStats_MySQLQualifiesKeyColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormTranslationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `translation_keys`")).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT module, COUNT(*) AS count FROM `translation_keys`")).
		WillReturnRows(sqlmock.NewRows([]string{"module", "count"}).
			AddRow("tickets", 2))
	// `key` is a reserved word in MySQL; the aggregation must reference it
	// through the table qualifier.
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(DISTINCT translations.key)")).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"language", "module", "count"}).
			AddRow("en", "tickets", 2))

	stats, err := repo.GetTranslationStats(context.Background(), "acme")
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalRegisteredKeys)
	require.Len(t, stats.TranslatedCounts, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
