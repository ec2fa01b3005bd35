package app

import (
	"github.com/uber-go/tally/v4"
)

// Metric names, reported under the "mode" tag.
const (
	metricRuns     = "runs"
	metricRanges   = "ranges"
	metricFailures = "failures"
	metricLatency  = "latency"
)

type runMetrics struct {
	runs     tally.Counter
	ranges   tally.Counter
	failures tally.Counter
	latency  tally.Timer
}

func newRunMetrics(scope tally.Scope, mode string) runMetrics {
	modeScope := scope.Tagged(map[string]string{"mode": mode})
	return runMetrics{
		runs:     modeScope.Counter(metricRuns),
		ranges:   modeScope.Counter(metricRanges),
		failures: modeScope.Counter(metricFailures),
		latency:  modeScope.Timer(metricLatency),
	}
}
