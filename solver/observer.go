package solver

import "time"

// Outcome classifies a finished solve.
type Outcome string

const (
	OutcomeFound           Outcome = "found"
	OutcomeNoPath          Outcome = "no_path"
	OutcomeInvalidEndpoint Outcome = "invalid_endpoint"
	OutcomeCanceled        Outcome = "canceled"
	OutcomeLimit           Outcome = "limit"
	OutcomeCached          Outcome = "cached"
	OutcomeError           Outcome = "error"
)

// Report describes one solve.
type Report struct {
	Outcome  Outcome
	Expanded int
	Cost     float64
	Duration time.Duration
}

// Observer receives a Report for every Solve call. It may be called from
// several goroutines at once.
type Observer interface {
	ObserveSearch(Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Report)

func (f ObserverFunc) ObserveSearch(r Report) { f(r) }
