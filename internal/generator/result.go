package generator

import "time"

// Status is the final state of a build.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Result describes one build.
type Result struct {
	BuildID string
	Status  Status

	// Items counts classified sources, Kinds breaks them down by kind.
	Items int
	Kinds map[string]int
	Pages int
	Posts int
	// Written counts items that produced output.
	Written int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func (r *Result) countKinds(found []discovered) {
	r.Kinds = make(map[string]int)
	for _, d := range found {
		r.Kinds[d.item.Kind.String()]++
	}
}
