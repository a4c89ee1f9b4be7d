package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutcome(t *testing.T) {
	if got := Outcome(nil); got != OutcomeSuccess {
		t.Errorf("Outcome(nil) = %q, want %q", got, OutcomeSuccess)
	}
	if got := Outcome(errors.New("boom")); got != OutcomeFailure {
		t.Errorf("Outcome(err) = %q, want %q", got, OutcomeFailure)
	}
}

func TestStockInvocationsCounter(t *testing.T) {
	c := StockInvocations.WithLabelValues("test-method", OutcomeSuccess)
	before := testutil.ToFloat64(c)

	c.Inc()

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}
