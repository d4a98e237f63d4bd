// Package metrics exposes authentication outcome counters in Prometheus
// format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for the result label.
const (
	ResultSuccess            = "success"
	ResultInvalidCredentials = "invalid_credentials"
	ResultDuplicate          = "duplicate"
	ResultInvalid            = "invalid"
	ResultError              = "error"
)

// Auth groups the authentication counters. A nil *Auth records nothing.
type Auth struct {
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

// NewAuth creates the counters and registers them with reg.
func NewAuth(reg prometheus.Registerer) *Auth {
	a := &Auth{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "auth",
			Name:      "registrations_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "auth",
			Name:      "token_rejections_total",
			Help:      "Requests rejected by the identity gate, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(a.logins, a.registrations, a.rejections)
	return a
}

// ObserveLogin counts one login attempt by result.
func (a *Auth) ObserveLogin(result string) {
	if a == nil {
		return
	}
	a.logins.WithLabelValues(result).Inc()
}

// ObserveRegistration counts one registration attempt by result.
func (a *Auth) ObserveRegistration(result string) {
	if a == nil {
		return
	}
	a.registrations.WithLabelValues(result).Inc()
}

// ObserveRejection counts one request refused by the identity gate, by reason.
func (a *Auth) ObserveRejection(reason string) {
	if a == nil {
		return
	}
	a.rejections.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
