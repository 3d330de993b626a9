package datagen

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// BatchInsertConfig configures batch insert behavior.
type BatchInsertConfig struct {
	// BatchSize is the maximum number of rows per INSERT statement. The
	// store's parameter limit may lower it further.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        1000,
		ProgressInterval: 100000,
	}
}

// ProgressReporter logs insert progress of one table every interval
// rows, and the insert rate when the table is complete.
type ProgressReporter struct {
	log      zerolog.Logger
	total    int64
	done     int64
	interval int64
	started  time.Time
}

// NewProgressReporter returns a reporter for total rows of table. log
// carries the caller's context fields (module, domain).
func NewProgressReporter(log zerolog.Logger, table string, total, interval int64) *ProgressReporter {
	if interval < 1 {
		interval = DefaultBatchConfig().ProgressInterval
	}
	return &ProgressReporter{
		log:      log.With().Str("table", table).Logger(),
		total:    total,
		interval: interval,
		started:  time.Now(),
	}
}

// Update records n more rows and logs when an interval boundary is
// crossed.
func (p *ProgressReporter) Update(n int64) {
	prev := p.done
	p.done += n
	if p.done/p.interval == prev/p.interval {
		return
	}
	pct := 100.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}
	p.log.Info().
		Int64("rows", p.done).
		Int64("total", p.total).
		Float64("percent", pct).
		Msg("Inserting rows")
}

// Done logs the row count and rate of the table.
func (p *ProgressReporter) Done() {
	elapsed := time.Since(p.started)
	ev := p.log.Debug().
		Int64("rows", p.done).
		Dur("elapsed", elapsed)
	if secs := elapsed.Seconds(); secs > 0 {
		ev = ev.Float64("rows_per_sec", float64(p.done)/secs)
	}
	ev.Msg("Table complete")
}

// FormatSize formats a byte count as a human-readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
