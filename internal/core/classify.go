package core

import (
	"strings"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// statusRule maps free-form status text onto a bucket by case-insensitive
// substring matching. Rules are evaluated top-to-bottom; the first match wins,
// so a status containing both "running" and "failed" lands in the failed
// bucket only if no earlier rule matched.
type statusRule struct {
	substrings []string
	bucket     model.StatusBucket
}

// statusRules is the ordered classification table. Precedence is
// finished > failed > running; everything else falls through to other.
var statusRules = []statusRule{
	{substrings: []string{"finish", "complete"}, bucket: model.BucketFinished},
	{substrings: []string{"fail", "error"}, bucket: model.BucketFailed},
	{substrings: []string{"running", "processing"}, bucket: model.BucketRunning},
}

// BucketFor returns the bucket for a single status string. A blank or missing
// status classifies as other rather than failing.
func BucketFor(status string) model.StatusBucket {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return model.BucketOther
	}
	for _, rule := range statusRules {
		for _, sub := range rule.substrings {
			if strings.Contains(s, sub) {
				return rule.bucket
			}
		}
	}
	return model.BucketOther
}

// Classify partitions process records into status buckets. Every record lands
// in exactly one bucket and relative input order is preserved within each
// bucket. Pure function, no I/O.
func Classify(records []model.ProcessRecord) model.Buckets {
	var b model.Buckets
	for _, rec := range records {
		switch BucketFor(rec.StatusName) {
		case model.BucketFinished:
			b.Finished = append(b.Finished, rec)
		case model.BucketFailed:
			b.Failed = append(b.Failed, rec)
		case model.BucketRunning:
			b.Running = append(b.Running, rec)
		default:
			b.Other = append(b.Other, rec)
		}
	}
	return b
}
