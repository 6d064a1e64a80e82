//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kidcheck/internal/domain/checkin"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, display_name, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, displayNameFor(email), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func displayNameFor(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func CreateTestChild(t *testing.T, db DBLike, displayName string, birthDate time.Time, primaryParent uuid.UUID, secondaryParent *uuid.UUID) uuid.UUID {
	t.Helper()

	childID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO children (id, display_name, birth_date, primary_parent_id, secondary_parent_id, allergies) VALUES ($1, $2, $3, $4, $5, $6)",
		childID, displayName, birthDate, primaryParent, secondaryParent, "peanuts")
	require.NoError(t, err)

	return childID
}

// CreateTestService inserts a service whose check-in window is open at
// the time of the call: it starts ten minutes from now with a
// thirty-minute lead.
func CreateTestService(t *testing.T, db DBLike, name string, maxCapacity int) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	ctx := context.Background()
	start := time.Now().UTC().Add(10 * time.Minute)

	_, err := db.Exec(ctx,
		"INSERT INTO services (id, name, is_active, start_time, end_time, checkin_lead_min, min_age, max_age, max_capacity) VALUES ($1, $2, true, $3, $4, 30, 0, 18, $5)",
		serviceID, name, start, start.Add(3*time.Hour), maxCapacity)
	require.NoError(t, err)

	return serviceID
}

// CreateStaleRequest inserts a pending request whose validity window has
// already passed, as if the sweep had not visited it yet.
func CreateStaleRequest(t *testing.T, db DBLike, childID, serviceID, requesterID uuid.UUID, token string) uuid.UUID {
	t.Helper()

	requestID := uuid.New()
	ctx := context.Background()
	createdAt := time.Now().UTC().Add(-checkin.RequestTTL - 5*time.Minute)

	_, err := db.Exec(ctx,
		"INSERT INTO checkin_requests (id, child_id, service_id, requester_id, token, status, note, created_at, expires_at) VALUES ($1, $2, $3, $4, $5, 'pending', '', $6, $7)",
		requestID, childID, serviceID, requesterID, token, createdAt, createdAt.Add(checkin.RequestTTL))
	require.NoError(t, err)

	return requestID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
