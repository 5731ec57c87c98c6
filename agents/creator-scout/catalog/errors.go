package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies an upstream catalog failure.
type ErrorKind int

const (
	// KindTransport covers network failures and 5xx responses.
	KindTransport ErrorKind = iota
	// KindQuota covers quota and rate-limit rejections.
	KindQuota
	// KindMalformed covers responses the client could not validate.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindQuota:
		return "quota"
	case KindMalformed:
		return "malformed"
	default:
		return "transport"
	}
}

// UpstreamError is a classified failure from the catalog API.
type UpstreamError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// quotaReasons are the googleapi error reasons that indicate the catalog
// is rate limiting us rather than genuinely failing.
var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
}

func classify(op string, err error) *UpstreamError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return &UpstreamError{Kind: KindQuota, Op: op, Err: err}
		}
		if apiErr.Code == http.StatusForbidden {
			for _, item := range apiErr.Errors {
				if quotaReasons[item.Reason] {
					return &UpstreamError{Kind: KindQuota, Op: op, Err: err}
				}
			}
			// 403 without a quota reason is still terminal; the bare
			// message often carries "quota" when reasons are stripped.
			if containsQuotaHint(apiErr.Message) {
				return &UpstreamError{Kind: KindQuota, Op: op, Err: err}
			}
		}
		return &UpstreamError{Kind: KindTransport, Op: op, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &UpstreamError{Kind: KindMalformed, Op: op, Err: err}
	}

	return &UpstreamError{Kind: KindTransport, Op: op, Err: err}
}

func malformed(op string, err error) *UpstreamError {
	return &UpstreamError{Kind: KindMalformed, Op: op, Err: err}
}

func containsQuotaHint(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit")
}
