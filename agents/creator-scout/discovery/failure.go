package discovery

import (
	"errors"

	"creator-scout/agents/creator-scout/catalog"
)

// FailureReason is the caller-facing classification of a failed invocation.
type FailureReason string

const (
	ReasonUnauthenticated FailureReason = "unauthenticated"
	ReasonQuotaExceeded   FailureReason = "quota_exceeded"
	ReasonTransport       FailureReason = "transport"
	ReasonMalformed       FailureReason = "malformed"
)

// ReasonForError maps an Outcome error to its failure reason. Quota errors
// are kept distinguishable from generic transport failures so hosts can
// show an actionable message.
func ReasonForError(err error) FailureReason {
	if errors.Is(err, ErrUnauthenticated) {
		return ReasonUnauthenticated
	}

	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Kind {
		case catalog.KindQuota:
			return ReasonQuotaExceeded
		case catalog.KindMalformed:
			return ReasonMalformed
		}
	}

	return ReasonTransport
}

// UserMessage renders a failure reason as a short human-readable line.
func UserMessage(reason FailureReason) string {
	switch reason {
	case ReasonUnauthenticated:
		return "Please sign in first."
	case ReasonQuotaExceeded:
		return "Search quota exhausted, try again later."
	case ReasonMalformed:
		return "The catalog returned an unreadable response."
	default:
		return "Could not reach the catalog, check your connection."
	}
}
