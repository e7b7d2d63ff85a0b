package wizishop

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JWebCreation/wizishop-sdk/internal/metrics"
)

// Failure describes a rejected create call.
type Failure struct {
	Operation string
	Key       string
	Payload   any
	Err       error
	RequestID string
	Time      time.Time
}

// FailureSink receives failed create payloads for later inspection.
type FailureSink interface {
	Record(ctx context.Context, f *Failure) error
}

// NopFailureSink discards failures with a debug log line. It is used when
// no sink is configured.
type NopFailureSink struct {
	log *slog.Logger
}

// NewNopFailureSink creates a sink that only logs.
func NewNopFailureSink(log *slog.Logger) *NopFailureSink {
	return &NopFailureSink{log: log}
}

// Record logs and discards f.
func (n *NopFailureSink) Record(ctx context.Context, f *Failure) error {
	n.log.DebugContext(ctx, "failure discarded (no sink configured)",
		"operation", f.Operation,
		"key", f.Key,
	)
	return nil
}

// DirFailureSink writes each failed payload as indented JSON to
// <dir>/error-<operation>-<key>.json, replacing any earlier file.
type DirFailureSink struct {
	dir string
}

// NewDirFailureSink creates dir if needed and returns a sink writing to it.
func NewDirFailureSink(dir string) (*DirFailureSink, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating failure directory: %w", err)
	}
	return &DirFailureSink{dir: dir}, nil
}

// Path returns the file a failure for operation and key is written to.
func (d *DirFailureSink) Path(operation, key string) string {
	return filepath.Join(d.dir, fmt.Sprintf("error-%s-%s.json", fileSafe(operation), fileSafe(key)))
}

// Record writes the payload of f.
func (d *DirFailureSink) Record(_ context.Context, f *Failure) error {
	data, err := json.MarshalIndent(f.Payload, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling failed payload: %w", err)
	}

	if err := os.WriteFile(d.Path(f.Operation, f.Key), data, 0o600); err != nil {
		return fmt.Errorf("writing failed payload: %w", err)
	}
	return nil
}

func fileSafe(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, s)
}

// recordFailure hands a failed create to the sink. Sink errors are logged,
// never returned: the API error is what the caller needs.
func (c *Client) recordFailure(ctx context.Context, operation, key string, payload any, err error) {
	f := &Failure{
		Operation: operation,
		Key:       key,
		Payload:   payload,
		Err:       err,
		Time:      time.Now(),
	}
	if apiErr, ok := asAPIError(err); ok {
		f.RequestID = apiErr.RequestID
	}

	metrics.FailuresRecordedTotal.WithLabelValues(operation).Inc()

	if sinkErr := c.sink.Record(ctx, f); sinkErr != nil {
		c.log.WarnContext(ctx, "recording failure",
			"operation", operation,
			"key", key,
			"error", sinkErr,
		)
	}
}
