package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

// loginAttempts counts Login calls by outcome.
var loginAttempts = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "acl_login_attempts_total",
		Help: "Number of login attempts, differentiated by result.",
	},
	[]string{"result"},
)
