package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	PhaseRequest  = "request"
	PhaseComplete = "complete"
)

// Metrics tracks identity flows. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registrations             *prometheus.CounterVec
	Logins                    *prometheus.CounterVec
	PasswordResets            *prometheus.CounterVec
	VerificationEmailFailures prometheus.Counter
	RegistrationCompensations *prometheus.CounterVec
}

// New registers every identity metric on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		PasswordResets: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_password_resets_total",
			Help: "Password reset operations by phase and outcome",
		}, []string{"phase", "outcome"}),
		VerificationEmailFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "identity_verification_email_failures_total",
			Help: "Verification emails the identity provider failed to send",
		}),
		RegistrationCompensations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_registration_compensations_total",
			Help: "Identity provider users deleted after a failed registration, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncPasswordReset(phase, outcome string) {
	if m == nil {
		return
	}
	m.PasswordResets.WithLabelValues(phase, outcome).Inc()
}

func (m *Metrics) IncVerificationEmailFailure() {
	if m == nil {
		return
	}
	m.VerificationEmailFailures.Inc()
}

func (m *Metrics) IncCompensation(outcome string) {
	if m == nil {
		return
	}
	m.RegistrationCompensations.WithLabelValues(outcome).Inc()
}

// Outcome maps an error to a label value.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
