package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Ledger Metrics
var (
	CreditsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCreditsGranted,
			Help: HelpTextCreditsGranted,
		},
	)

	CreditsDeducted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCreditsDeducted,
			Help: HelpTextCreditsDeducted,
		},
	)

	ItemsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsGranted,
			Help: HelpTextItemsGranted,
		},
		[]string{LabelItem},
	)

	ItemsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsRemoved,
			Help: HelpTextItemsRemoved,
		},
		[]string{LabelItem},
	)

	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchases,
			Help: HelpTextPurchases,
		},
		[]string{LabelItem},
	)

	Rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRejections,
			Help: HelpTextRejections,
		},
		[]string{LabelOperation, LabelReason},
	)
)

// Character Metrics
var (
	CharactersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCharactersCreated,
			Help: HelpTextCharactersCreated,
		},
	)

	CharactersDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCharactersDeleted,
			Help: HelpTextCharactersDeleted,
		},
	)

	PendingSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePendingSwept,
			Help: HelpTextPendingSwept,
		},
	)
)

// RecordRejection counts a business-rule refusal of operation. Errors that
// are not business rejections are ignored.
func RecordRejection(operation string, err error) {
	if reason := ReasonFor(err); reason != "" {
		Rejections.WithLabelValues(operation, reason).Inc()
	}
}

// ReasonFor maps a domain error to its rejection label, or "" for store failures
func ReasonFor(err error) string {
	switch {
	case err == nil, errors.Is(err, domain.ErrDatabaseError):
		return ""
	case errors.Is(err, domain.ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, domain.ErrAlreadyOwned):
		return ReasonAlreadyOwned
	case errors.Is(err, domain.ErrNotOwned):
		return ReasonNotOwned
	case errors.Is(err, domain.ErrNotEnough):
		return ReasonNotEnough
	case errors.Is(err, domain.ErrCharacterNotFound),
		errors.Is(err, domain.ErrShopItemNotFound),
		errors.Is(err, domain.ErrPendingNotFound):
		return ReasonNotFound
	case errors.Is(err, domain.ErrSlotOccupied):
		return ReasonSlotOccupied
	case errors.Is(err, domain.ErrNotPromptOwner):
		return ReasonNotPromptOwner
	case errors.Is(err, domain.ErrInvalidInput):
		return ReasonInvalidInput
	default:
		return ""
	}
}
