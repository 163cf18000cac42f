package record

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinScore and MaxScore bound the single aggregate mark a student can
	// hold.
	MinScore = 0
	MaxScore = 100
)

// Record is a single student's stored data.
type Record struct {
	Roll      string
	Name      string
	Score     float64
	CreatedAt int64
}

// Validate checks that a record is acceptable for storage. Returns an error
// wrapping ErrInvalidRecord if it is not.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Roll) == "" {
		return fmt.Errorf("%w: missing roll number", ErrInvalidRecord)
	}

	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidRecord)
	}

	if r.Score < MinScore || r.Score > MaxScore {
		return fmt.Errorf("%w: score %s is not between %d and %d", ErrInvalidRecord, FormatScore(r.Score), MinScore, MaxScore)
	}

	return nil
}

// Matches reports whether query is a case-insensitive substring of the
// record's roll or name.
func (r *Record) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}

	return strings.Contains(strings.ToLower(r.Roll), query) ||
		strings.Contains(strings.ToLower(r.Name), query)
}

// Clone returns a copy of the record.
func (r *Record) Clone() Record {
	return Record{
		Roll:      r.Roll,
		Name:      r.Name,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
	}
}

// FieldNames is the delimited-file column order shared by the backing file
// and CSV exports.
var FieldNames = []string{"roll", "name", "score", "created_at"}

// Fields renders the record as a row in FieldNames order.
func (r *Record) Fields() []string {
	return []string{
		r.Roll,
		r.Name,
		FormatScore(r.Score),
		strconv.FormatInt(r.CreatedAt, 10),
	}
}

// FormatScore renders a score the way it is written to the backing file.
// Whole numbers drop the decimal part, e.g. 88 not 88.00.
func FormatScore(score float64) string {
	if score == float64(int64(score)) {
		return strconv.FormatInt(int64(score), 10)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// ParseScore parses a score written by FormatScore.
func ParseScore(s string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	return score, nil
}
