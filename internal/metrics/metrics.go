package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service exports. All series carry a tool label.
type Metrics struct {
	tool     string
	gatherer prometheus.Gatherer

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	interviewsCreated   *prometheus.CounterVec
	submissions         *prometheus.CounterVec
	paymentSuccess      *prometheus.CounterVec
	paymentRevenueCents *prometheus.CounterVec
	tokensConsumed      *prometheus.CounterVec
	freeTrialUsed       *prometheus.CounterVec
	crawlerVisits       *prometheus.CounterVec
}

// New registers the collectors on reg. Use a fresh prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry, tool string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		tool:     tool,
		gatherer: reg,

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"tool", "endpoint", "method", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool", "endpoint", "method"}),
		interviewsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "interviews_created_total",
			Help: "Total interviews created",
		}, []string{"tool"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total candidate submissions",
		}, []string{"tool"}),
		paymentSuccess: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_success_total",
			Help: "Successful payments",
		}, []string{"tool", "product_sku"}),
		paymentRevenueCents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_revenue_cents_total",
			Help: "Total revenue in cents",
		}, []string{"tool"}),
		tokensConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tokens_consumed_total",
			Help: "Tokens consumed",
		}, []string{"tool"}),
		freeTrialUsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "free_trial_used_total",
			Help: "Free trials used",
		}, []string{"tool"}),
		crawlerVisits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_visits_total",
			Help: "Crawler visits",
		}, []string{"tool", "bot"}),
	}
}

// NewNop returns metrics backed by a private registry, for wiring that does not export them.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry(), "test")
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) InterviewCreated() {
	m.interviewsCreated.WithLabelValues(m.tool).Inc()
}

func (m *Metrics) SubmissionReceived() {
	m.submissions.WithLabelValues(m.tool).Inc()
}

func (m *Metrics) FreeTrialUsed() {
	m.freeTrialUsed.WithLabelValues(m.tool).Inc()
}

func (m *Metrics) TokenConsumed() {
	m.tokensConsumed.WithLabelValues(m.tool).Inc()
}

// PaymentSucceeded records one completed checkout for productKey.
func (m *Metrics) PaymentSucceeded(productKey string, amountCents int) {
	m.paymentSuccess.WithLabelValues(m.tool, productKey).Inc()
	if amountCents > 0 {
		m.paymentRevenueCents.WithLabelValues(m.tool).Add(float64(amountCents))
	}
}

func (m *Metrics) observeRequest(endpoint, method, status string, seconds float64) {
	m.httpRequests.WithLabelValues(m.tool, endpoint, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.tool, endpoint, method).Observe(seconds)
}

func (m *Metrics) crawlerVisit(bot string) {
	m.crawlerVisits.WithLabelValues(m.tool, bot).Inc()
}
