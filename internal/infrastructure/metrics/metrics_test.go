package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.Transactions == nil || m.HTTPRequests == nil || m.AccountsCreated == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.Transactions.WithLabelValues("deposit", "applied").Inc()
	m.TransactionErrors.WithLabelValues("insufficient_funds").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.Transactions.WithLabelValues("deposit", "applied")); got != 1 {
		t.Fatalf("expected deposit counter 1, got %v", got)
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
