// Package metrics exports the activity of nets and industries to Prometheus.
//
// Collector methods subscribe to engine notifications, so they share the
// threading rules of the nets they observe. The metrics themselves may be
// scraped from any goroutine.
package metrics

import (
	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/industry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "petri"

type Collector struct {
	// Fired counts fired transitions. Labels: net
	Fired *prometheus.CounterVec
	// Deadlock is 1 while a net is deadlocked. Labels: net
	Deadlock *prometheus.GaugeVec
	// Tokens is the total number of tokens in a net. Labels: net
	Tokens *prometheus.GaugeVec
	// Messages counts connected messages.
	Messages prometheus.Counter
}

// New registers the collector's metrics with reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		Fired: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_fired_total",
			Help:      "Transitions fired, per net.",
		}, []string{"net"}),
		Deadlock: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deadlock",
			Help:      "1 while no transition of the net is enabled.",
		}, []string{"net"}),
		Tokens: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tokens",
			Help:      "Tokens held by the active places of the net.",
		}, []string{"net"}),
		Messages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_connected_total",
			Help:      "Messages connected between enterprises.",
		}),
	}
}

// ObserveNet keeps the per-net metrics of n current from now on.
func (c *Collector) ObserveNet(n *petri.Net) {
	fired := c.Fired.WithLabelValues(n.Name)
	deadlock := c.Deadlock.WithLabelValues(n.Name)
	tokens := c.Tokens.WithLabelValues(n.Name)
	setDeadlock := func() {
		if n.Deadlock() {
			deadlock.Set(1)
		} else {
			deadlock.Set(0)
		}
	}
	setTokens := func() {
		total := 0
		for _, v := range n.Marking() {
			total += v
		}
		tokens.Set(float64(total))
	}
	n.Fired.Connect(func(*petri.Transition) { fired.Inc() })
	n.DeadlockChanged.Subscribe(setDeadlock)
	n.Changed.Subscribe(setTokens)
	setDeadlock()
	setTokens()
}

// ObserveIndustry observes the top level net, every enterprise net present
// or added later, and message connections.
func (c *Collector) ObserveIndustry(ind *industry.Industry) {
	c.ObserveNet(ind.Net)
	for _, e := range ind.Enterprises.All() {
		c.ObserveNet(e.Net())
	}
	ind.Enterprises.Added.Connect(func(e *industry.Enterprise) { c.ObserveNet(e.Net()) })
	ind.Connected.Connect(func(*industry.Message) { c.Messages.Inc() })
}
