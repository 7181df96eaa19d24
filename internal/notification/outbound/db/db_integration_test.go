package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/valueobject"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the real idempotent creation protocol against Postgres.
// Point HERALD_TEST_POSTGRES_DSN at a scratch database to enable them.
const testDSNEnv = "HERALD_TEST_POSTGRES_DSN"

// pgx's extended protocol takes one statement per Exec, so the schema is a
// statement list.
var testSchema = []string{`
CREATE TABLE IF NOT EXISTS users (
	id uuid PRIMARY KEY,
	email text NOT NULL UNIQUE,
	full_name text NOT NULL,
	phone_number text,
	push_token text,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);`, `
CREATE TABLE IF NOT EXISTS user_preferences (
	user_id uuid PRIMARY KEY REFERENCES users (id),
	allow_email boolean NOT NULL,
	allow_sms boolean NOT NULL,
	allow_push boolean NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);`, `
CREATE TABLE IF NOT EXISTS notifications (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL REFERENCES users (id),
	external_id text NOT NULL,
	template_name text NOT NULL,
	content jsonb NOT NULL,
	priority int2 NOT NULL,
	status int2 NOT NULL,
	created_at timestamptz NOT NULL,
	updated_at timestamptz NOT NULL,
	UNIQUE (user_id, external_id)
);`, `
CREATE TABLE IF NOT EXISTS idempotency_keys (
	key uuid PRIMARY KEY,
	response_status int4,
	response_body jsonb,
	expires_at timestamptz NOT NULL,
	created_at timestamptz NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS delivery_logs (
	id int8 PRIMARY KEY,
	notification_id uuid NOT NULL REFERENCES notifications (id),
	channel int2 NOT NULL,
	status int2 NOT NULL,
	error_message text,
	sent_at timestamptz NOT NULL
);`}

func newIntegrationDB(t *testing.T) (*DB, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("set %s to run database tests", testDSNEnv)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, ddl := range testSchema {
		_, err = pool.Exec(ctx, ddl)
		require.NoError(t, err)
	}
	_, err = pool.Exec(ctx, `TRUNCATE delivery_logs, notifications, idempotency_keys, user_preferences, users`)
	require.NoError(t, err)

	return NewDB(pool, instrument.NewNoop()), pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.NewString()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, full_name) VALUES ($1, $2, 'Jo Doe')`,
		id, id+"@example.com")
	require.NoError(t, err)
	return id
}

func createData(userID, externalID string) entity.CreateNotification {
	return entity.CreateNotification{
		ID:           uuid.NewString(),
		UserID:       userID,
		ExternalID:   externalID,
		TemplateName: "order-shipped",
		Content:      valueobject.JSONMap{"subject": "Your order shipped"},
		Priority:     entity.PriorityHigh,
	}
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n))
	return n
}

func TestCreateWithIdempotency_ReplayReturnsCachedNotification(t *testing.T) {
	store, pool := newIntegrationDB(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	key := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)

	first, created, err := store.CreateWithIdempotency(ctx, key, expiry, createData(userID, "order-1"))
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, entity.StatusPending, first.Status)

	// Replay with the same key and different payload returns the cached
	// notification untouched.
	second, created, err := store.CreateWithIdempotency(ctx, key, expiry, createData(userID, "order-other"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "order-1", second.ExternalID)

	assert.Equal(t, 1, countRows(t, pool, "notifications"))
	assert.Equal(t, 1, countRows(t, pool, "idempotency_keys"))
}

func TestCreateWithIdempotency_DeduplicatesAcrossKeys(t *testing.T) {
	store, pool := newIntegrationDB(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	expiry := time.Now().Add(24 * time.Hour)

	first, created, err := store.CreateWithIdempotency(ctx, uuid.NewString(), expiry, createData(userID, "order-1"))
	require.NoError(t, err)
	require.True(t, created)

	// A different key but the same (user, external) pair binds to the
	// existing notification instead of creating a second one.
	second, created, err := store.CreateWithIdempotency(ctx, uuid.NewString(), expiry, createData(userID, "order-1"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	assert.Equal(t, 1, countRows(t, pool, "notifications"))
	assert.Equal(t, 2, countRows(t, pool, "idempotency_keys"))
}

func TestCreateWithIdempotency_InFlightKeyConflicts(t *testing.T) {
	store, pool := newIntegrationDB(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	key := uuid.NewString()

	// A live claim row without a cached response marks the key in flight.
	_, err := pool.Exec(ctx,
		`INSERT INTO idempotency_keys (key, expires_at, created_at) VALUES ($1, now() + interval '1 hour', now())`,
		key)
	require.NoError(t, err)

	_, _, err = store.CreateWithIdempotency(ctx, key, time.Now().Add(24*time.Hour), createData(userID, "order-1"))
	require.ErrorIs(t, err, goerror.ErrConflict)
	assert.Equal(t, 0, countRows(t, pool, "notifications"))
}

func TestCreateWithIdempotency_ExpiredKeyIsReclaimed(t *testing.T) {
	store, pool := newIntegrationDB(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	key := uuid.NewString()

	// Leftover expired rows the reaper has not swept yet. Both the stale
	// claim and the stale cached response must scan as absent.
	_, err := pool.Exec(ctx,
		`INSERT INTO idempotency_keys (key, response_status, response_body, expires_at, created_at)
		 VALUES ($1, 201, '{"id":"defunct"}', now() - interval '1 hour', now() - interval '25 hours')`,
		key)
	require.NoError(t, err)

	notif, created, err := store.CreateWithIdempotency(ctx, key, time.Now().Add(24*time.Hour), createData(userID, "order-1"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "order-1", notif.ExternalID)

	var expiresAt time.Time
	var body []byte
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT expires_at, response_body FROM idempotency_keys WHERE key = $1`, key).Scan(&expiresAt, &body))
	assert.True(t, expiresAt.After(time.Now()))
	assert.NotEmpty(t, body)
	assert.Equal(t, 1, countRows(t, pool, "idempotency_keys"))
}

func TestCreateWithIdempotency_RollsBackOnInsertFailure(t *testing.T) {
	store, pool := newIntegrationDB(t)
	ctx := context.Background()
	key := uuid.NewString()

	// An unknown user violates the foreign key mid transaction. The claim
	// row written before the failure must roll back with it.
	_, _, err := store.CreateWithIdempotency(ctx, key, time.Now().Add(24*time.Hour), createData(uuid.NewString(), "order-1"))
	require.Error(t, err)

	assert.Equal(t, 0, countRows(t, pool, "notifications"))
	assert.Equal(t, 0, countRows(t, pool, "idempotency_keys"))
}
