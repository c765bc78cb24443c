package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"treasury/internal/domain"
)

const metricPrefix = "treasury_"

// Metrics holds the governance counters exported by the host.
type Metrics struct {
	donations         prometheus.Counter
	donatedAmount     prometheus.Counter
	proposalsCreated  prometheus.Counter
	votes             *prometheus.CounterVec
	proposalsDecided  *prometheus.CounterVec
	proposalsExecuted prometheus.Counter
	releasedAmount    prometheus.Counter
	treasuryBalance   prometheus.Gauge
	snapshotBytes     prometheus.Gauge
	checkpointErrors  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with registry. A nil
// registry yields working but unregistered collectors.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		donations: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "donations_total",
			Help: "Total number of recorded donations",
		}),
		donatedAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "donated_amount_total",
			Help: "Sum of all donated amounts",
		}),
		proposalsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "proposals_created_total",
			Help: "Total number of funding proposals created",
		}),
		votes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "votes_total",
			Help: "Total number of recorded votes by choice",
		}, []string{"choice"}),
		proposalsDecided: factory.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "proposals_decided_total",
			Help: "Total number of proposals leaving the active state by outcome",
		}, []string{"outcome"}),
		proposalsExecuted: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "proposals_executed_total",
			Help: "Total number of executed proposals",
		}),
		releasedAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "released_amount_total",
			Help: "Sum of amounts released by executed proposals",
		}),
		treasuryBalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "balance",
			Help: "Current spendable treasury balance",
		}),
		snapshotBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "snapshot_bytes",
			Help: "Size of the last captured or restored snapshot",
		}),
		checkpointErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "checkpoint_errors_total",
			Help: "Periodic snapshot saves that failed",
		}),
	}
}

func (m *Metrics) observeDonation(amount uint64) {
	if m == nil {
		return
	}
	m.donations.Inc()
	m.donatedAmount.Add(float64(amount))
}

func (m *Metrics) observeVote(approve bool) {
	if m == nil {
		return
	}
	choice := "no"
	if approve {
		choice = "yes"
	}
	m.votes.WithLabelValues(choice).Inc()
}

func (m *Metrics) observeDecision(status domain.ProposalStatus) {
	if m == nil {
		return
	}
	m.proposalsDecided.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) observeExecution(amount uint64) {
	if m == nil {
		return
	}
	m.proposalsExecuted.Inc()
	m.releasedAmount.Add(float64(amount))
}

func (m *Metrics) observeProposal() {
	if m == nil {
		return
	}
	m.proposalsCreated.Inc()
}

func (m *Metrics) setBalance(balance uint64) {
	if m == nil {
		return
	}
	m.treasuryBalance.Set(float64(balance))
}

func (m *Metrics) setSnapshotSize(n int) {
	if m == nil {
		return
	}
	m.snapshotBytes.Set(float64(n))
}

func (m *Metrics) observeCheckpointError() {
	if m == nil {
		return
	}
	m.checkpointErrors.Inc()
}
