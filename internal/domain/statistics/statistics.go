package statistics

import "errors"

// Kind names the dimension statistics are grouped by.
type Kind string

const (
	KindSubject Kind = "subject"
	KindPart    Kind = "part"
	KindUser    Kind = "user"
)

var ErrUnknownKind = errors.New("statistics kind must be subject, part or user")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSubject, KindPart, KindUser:
		return k, nil
	}
	return "", ErrUnknownKind
}

// Summary aggregates the scores of a set of tests. All fields are zero
// when the set is empty.
type Summary struct {
	TestsCount int
	MinScore   float64
	MaxScore   float64
	AvgScore   float64
}

// Summarize computes count/min/max/avg over scores.
func Summarize(scores []float64) Summary {
	if len(scores) == 0 {
		return Summary{}
	}
	s := Summary{
		TestsCount: len(scores),
		MinScore:   scores[0],
		MaxScore:   scores[0],
	}
	var sum float64
	for _, v := range scores {
		sum += v
		s.MinScore = min(s.MinScore, v)
		s.MaxScore = max(s.MaxScore, v)
	}
	s.AvgScore = sum / float64(len(scores))
	return s
}

// ScopeStatistics pairs one scope record with its summary.
type ScopeStatistics struct {
	Kind  Kind
	ID    string
	Label string // subject title, part title or user display name
	Summary
}
