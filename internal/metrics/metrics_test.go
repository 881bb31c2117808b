package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	before := testutil.ToFloat64(MatchRuns.WithLabelValues(OutcomeMatched))

	ObserveRun(OutcomeMatched, 120*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(MatchRuns.WithLabelValues(OutcomeMatched)))
	assert.Equal(t, 1, testutil.CollectAndCount(MatchRunDuration))
}
