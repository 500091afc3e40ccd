package password

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const credentialsDDL = `
CREATE TABLE credentials (
	user_id uuid PRIMARY KEY,
	hash varchar(255) NOT NULL,
	created_at datetime,
	updated_at datetime
);
`

func setupPasswordTest(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.Exec(credentialsDDL).Error, "Failed to create credentials table")

	return NewGORMService(db, zap.NewNop())
}

func TestSetAndCheck(t *testing.T) {
	svc := setupPasswordTest(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Set(ctx, userID, "s3cret-pass"))

	ok, err := svc.Check(ctx, userID, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Check(ctx, userID, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Setting again replaces the hash in place; the old password stops working.
func TestSet_ReplacesExistingHash(t *testing.T) {
	svc := setupPasswordTest(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Set(ctx, userID, "old-pass"))
	require.NoError(t, svc.Set(ctx, userID, "new-pass"))

	ok, err := svc.Check(ctx, userID, "old-pass")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Check(ctx, userID, "new-pass")
	require.NoError(t, err)
	assert.True(t, ok)
}

// An account with no stored credential never matches, and the miss is not
// an error.
func TestCheck_NoCredential(t *testing.T) {
	svc := setupPasswordTest(t)
	ctx := context.Background()

	ok, err := svc.Check(ctx, uuid.New(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}
