package persistence

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/identity"
)

func userColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version", "tenant_id", "created_by",
		"name", "email", "role", "status",
	}
}

func userRow(id, tenantID uuid.UUID, name string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, now, now, 1, tenantID, nil,
		name, "user@example.com", "operator", "active",
	}
}

func TestGormUserRepository_FindActiveByIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormUserRepository(db)

	tenantID := uuid.New()
	activeID := uuid.New()
	staleID := uuid.New()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(userRow(activeID, tenantID, "Ruwan Jayasuriya")...)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE tenant_id = \$1 AND status = \$2 AND id IN \(\$3,\$4\)`).
		WithArgs(tenantID, identity.UserStatusActive, activeID, staleID).
		WillReturnRows(rows)

	users, err := repo.FindActiveByIDs(context.Background(), tenantID, []uuid.UUID{activeID, staleID})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, activeID, users[0].ID)
	assert.Equal(t, "Ruwan Jayasuriya", users[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindActiveByIDs_EmptySet(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewGormUserRepository(db)

	users, err := repo.FindActiveByIDs(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}
