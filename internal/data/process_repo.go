// Package data implements the Postgres access layer for the report pipeline.
package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/perceptionlabs/procreport/internal/errors"

	"github.com/perceptionlabs/procreport/internal/data/pgxutil"
	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// clientRoleID identifies client accounts in the user table; internal and
// admin accounts carry other roles and are never reported on.
const clientRoleID = 2

// listRecentSQL returns all client processes started within the lookback
// window, newest first. The status name comes from the status enum table so
// the report always shows the operator-facing text.
const listRecentSQL = `
	SELECT
		u.name,
		u.api_key,
		(SELECT name FROM process_status ps WHERE ps.id = p.status_id) AS status_name,
		p.start_time,
		p.ping_time,
		p.stop_time,
		ROUND(EXTRACT(EPOCH FROM (p.ping_time - p.start_time)) / 60, 1) AS elapsed_time_min,
		s.uri AS source_uri,
		s.alias AS source_alias,
		s.uuid AS source_uuid,
		p.uuid AS process_uuid,
		p.user_configuration
	FROM
		process p
		JOIN source s ON p.source_id = s.id
		JOIN "USER" u ON u.id = s.user_id
	WHERE
		p.start_time > now() - make_interval(secs => $1)
		AND u.role_id = $2
	ORDER BY
		p.start_time DESC`

// clientNamesSQL maps tenant API keys to client display names.
const clientNamesSQL = `
	SELECT
		u.api_key,
		u.name AS client_name
	FROM
		"USER" u
	WHERE
		u.role_id = $1
		AND u.api_key IS NOT NULL`

// ProcessRepo reads client process snapshots from Postgres. It is strictly
// read-only; all queries run inside read-only transactions.
type ProcessRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewProcessRepo creates a ProcessRepo.
func NewProcessRepo(db *sql.DB, logger *slog.Logger) *ProcessRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessRepo{DB: db, logger: logger}
}

// ListRecent returns client processes started within the given window,
// ordered by start time descending. Errors are mapped through the structured
// error layer so the caller can tell schema drift from unavailability.
func (r *ProcessRepo) ListRecent(ctx context.Context, window time.Duration) ([]model.ProcessRecord, error) {
	var records []model.ProcessRecord
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Opts: pgxutil.ReadOnly(),
		Fn: func(tx *sql.Tx) error {
			rows, err := tx.QueryContext(ctx, listRecentSQL, window.Seconds(), clientRoleID)
			if err != nil {
				return fmt.Errorf("query recent processes: %w", err)
			}
			defer rows.Close() //nolint:errcheck // closed via rows.Err below

			for rows.Next() {
				rec, scanErr := scanProcessRecord(rows)
				if scanErr != nil {
					return fmt.Errorf("scan process row: %w", scanErr)
				}
				records = append(records, rec)
			}
			return rows.Err()
		},
	})
	if txErr != nil {
		return nil, apperrors.MapDBError(txErr)
	}

	r.logger.Info("retrieved recent processes", "count", len(records), "window", window.String())
	return records, nil
}

// ClientNamesByAPIKey returns the api_key -> client name mapping for active
// client accounts. Failures degrade to an empty map: the mapping only
// prettifies the report, it never gates it.
func (r *ProcessRepo) ClientNamesByAPIKey(ctx context.Context) (map[string]string, error) {
	mapping := map[string]string{}
	txErr := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Opts: pgxutil.ReadOnly(),
		Fn: func(tx *sql.Tx) error {
			rows, err := tx.QueryContext(ctx, clientNamesSQL, clientRoleID)
			if err != nil {
				return fmt.Errorf("query client names: %w", err)
			}
			defer rows.Close() //nolint:errcheck // closed via rows.Err below

			for rows.Next() {
				var apiKey, name string
				if scanErr := rows.Scan(&apiKey, &name); scanErr != nil {
					return fmt.Errorf("scan client name row: %w", scanErr)
				}
				mapping[apiKey] = name
			}
			return rows.Err()
		},
	})
	if txErr != nil {
		r.logger.Warn("client name mapping unavailable", "error", txErr)
		return map[string]string{}, apperrors.MapDBError(txErr)
	}
	return mapping, nil
}

// scanProcessRecord maps one result row onto a ProcessRecord, normalizing
// nullable columns.
func scanProcessRecord(rows *sql.Rows) (model.ProcessRecord, error) {
	var (
		rec         model.ProcessRecord
		apiKey      sql.NullString
		statusName  sql.NullString
		pingTime    sql.NullTime
		stopTime    sql.NullTime
		elapsedMin  sql.NullFloat64
		sourceURI   sql.NullString
		sourceAlias sql.NullString
		sourceUUID  sql.NullString
		userConfig  []byte
	)
	err := rows.Scan(
		&rec.Name,
		&apiKey,
		&statusName,
		&rec.StartTime,
		&pingTime,
		&stopTime,
		&elapsedMin,
		&sourceURI,
		&sourceAlias,
		&sourceUUID,
		&rec.ProcessUUID,
		&userConfig,
	)
	if err != nil {
		return model.ProcessRecord{}, err
	}

	rec.APIKey = apiKey.String
	rec.StatusName = statusName.String
	if pingTime.Valid {
		t := pingTime.Time
		rec.PingTime = &t
	}
	if stopTime.Valid {
		t := stopTime.Time
		rec.StopTime = &t
	}
	if elapsedMin.Valid {
		v := elapsedMin.Float64
		rec.ElapsedMin = &v
	}
	rec.SourceURI = sourceURI.String
	rec.SourceAlias = sourceAlias.String
	rec.SourceUUID = sourceUUID.String
	rec.UserConfiguration = userConfig
	return rec, nil
}
