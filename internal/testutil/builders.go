package testutil

import (
	"context"
	"database/sql"
	"time"
)

// Status enum IDs installed by ensureReportSchema.
const (
	StatusFinishedID = 1
	StatusFailedID   = 2
	StatusRunningID  = 3
	StatusQueuedID   = 4
)

// ClientRoleID matches the role the report filters on.
const ClientRoleID = 2

// InsertClientUser inserts a client account and returns its id.
func InsertClientUser(t TestingTB, db *sql.DB, name, apiKey string) int {
	t.Helper()
	var id int
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO "USER" (name, api_key, role_id) VALUES ($1, $2, $3) RETURNING id`,
		name, apiKey, ClientRoleID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert client user: %v", err)
	}
	return id
}

// InsertInternalUser inserts a non-client account; its processes must never
// appear in report queries.
func InsertInternalUser(t TestingTB, db *sql.DB, name string) int {
	t.Helper()
	var id int
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO "USER" (name, api_key, role_id) VALUES ($1, NULL, 1) RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert internal user: %v", err)
	}
	return id
}

// InsertSource inserts a source for the given user and returns its id.
func InsertSource(t TestingTB, db *sql.DB, userID int, uri, alias, uuid string) int {
	t.Helper()
	var id int
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO source (user_id, uri, alias, uuid) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, uri, alias, uuid,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert source: %v", err)
	}
	return id
}

// ProcessFixture describes a process row to insert.
type ProcessFixture struct {
	SourceID  int
	StatusID  int
	UUID      string
	StartTime time.Time
	PingTime  *time.Time
	StopTime  *time.Time
	UserCfg   string
}

// InsertProcess inserts a process row and returns its id.
func InsertProcess(t TestingTB, db *sql.DB, p ProcessFixture) int {
	t.Helper()
	cfg := p.UserCfg
	if cfg == "" {
		cfg = "{}"
	}
	var id int
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO process (source_id, status_id, uuid, start_time, ping_time, stop_time, user_configuration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.SourceID, p.StatusID, p.UUID, p.StartTime, p.PingTime, p.StopTime, cfg,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert process: %v", err)
	}
	return id
}
