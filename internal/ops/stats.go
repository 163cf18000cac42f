package ops

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ukane-philemon/srms/internal/record"
)

// ErrEmptyCollection is returned by Statistics when there are no records to
// aggregate. Callers never receive sentinel numbers for an empty collection;
// this error is the documented policy.
var ErrEmptyCollection = errors.New("no student records")

// Summary is an aggregate report over the whole collection.
type Summary struct {
	TotalStudents int
	// Average is the mean score, rounded to two decimal places.
	Average      float64
	HighestScore float64
	LowestScore  float64
	// Topper is the first record with the highest score in store order, so
	// ties break deterministically.
	Topper *record.Record
	// Toppers holds every record tied at the highest score, in store order.
	Toppers []*record.Record
}

// Statistics computes a Summary over the current collection. Returns
// ErrEmptyCollection when there are no records.
func (o *Operations) Statistics() (*Summary, error) {
	records := o.store.All()
	if len(records) == 0 {
		return nil, ErrEmptyCollection
	}

	summary := &Summary{
		TotalStudents: len(records),
		HighestScore:  records[0].Score,
		LowestScore:   records[0].Score,
	}

	var total float64
	for _, r := range records {
		total += r.Score
		if r.Score > summary.HighestScore {
			summary.HighestScore = r.Score
		}
		if r.Score < summary.LowestScore {
			summary.LowestScore = r.Score
		}
	}

	summary.Average = math.Round(total/float64(len(records))*100) / 100

	for _, r := range records {
		if r.Score == summary.HighestScore {
			summary.Toppers = append(summary.Toppers, r)
		}
	}
	summary.Topper = summary.Toppers[0]

	return summary, nil
}

// Grade maps a score to its grade band.
func Grade(score float64) string {
	switch {
	case score > 69:
		return "Excellent"
	case score > 59:
		return "Good"
	case score > 49:
		return "Fair"
	case score > 40:
		return "Pass"
	default:
		return "Fail"
	}
}
