// Package model defines the core data types used throughout the daily process
// report system.
package model

import (
	"encoding/json"
	"time"
)

// StatusBucket is one of the four mutually exclusive classifications a
// process record falls into for reporting purposes.
type StatusBucket string

const (
	// BucketFinished holds processes whose status indicates successful completion.
	BucketFinished StatusBucket = "finished"
	// BucketFailed holds processes whose status indicates a failure.
	BucketFailed StatusBucket = "failed"
	// BucketRunning holds processes that are still in progress.
	BucketRunning StatusBucket = "running"
	// BucketOther holds everything that matched none of the known patterns.
	BucketOther StatusBucket = "other"
)

// Valid returns true if the StatusBucket is one of the known buckets.
func (b StatusBucket) Valid() bool {
	return b == BucketFinished || b == BucketFailed || b == BucketRunning || b == BucketOther
}

// ProcessRecord is a read-only snapshot of one client process row as returned
// by the monitoring query. The database owns the data; this system never
// writes it back.
type ProcessRecord struct {
	// Name is the owning client's display name.
	Name string `json:"name" db:"name"`
	// APIKey groups processes by tenant. May be empty for misconfigured accounts.
	APIKey string `json:"api_key" db:"api_key"`
	// StatusName is the free-form status text from the status enum table.
	StatusName string     `json:"status_name" db:"status_name"`
	StartTime  time.Time  `json:"start_time" db:"start_time"`
	PingTime   *time.Time `json:"ping_time,omitempty" db:"ping_time"`
	StopTime   *time.Time `json:"stop_time,omitempty" db:"stop_time"`
	// ElapsedMin is the derived runtime in minutes (ping - start), when known.
	ElapsedMin  *float64 `json:"elapsed_time_min,omitempty" db:"elapsed_time_min"`
	SourceURI   string   `json:"source_uri" db:"source_uri"`
	SourceAlias string   `json:"source_alias" db:"source_alias"`
	SourceUUID  string   `json:"source_uuid" db:"source_uuid"`
	// ProcessUUID is the globally unique process identifier used for log
	// correlation and artifact lookup.
	ProcessUUID string `json:"process_uuid" db:"process_uuid"`
	// UserConfiguration is an opaque per-process configuration blob.
	UserConfiguration json.RawMessage `json:"user_configuration,omitempty" db:"user_configuration"`
}

// Buckets holds classified process records, preserving the relative order of
// the input within each bucket.
type Buckets struct {
	Finished []ProcessRecord
	Failed   []ProcessRecord
	Running  []ProcessRecord
	Other    []ProcessRecord
}

// Total returns the number of records across all buckets.
func (b Buckets) Total() int {
	return len(b.Finished) + len(b.Failed) + len(b.Running) + len(b.Other)
}

// ByBucket returns the records for a single bucket. Unknown buckets return nil.
func (b Buckets) ByBucket(bucket StatusBucket) []ProcessRecord {
	switch bucket {
	case BucketFinished:
		return b.Finished
	case BucketFailed:
		return b.Failed
	case BucketRunning:
		return b.Running
	case BucketOther:
		return b.Other
	default:
		return nil
	}
}
