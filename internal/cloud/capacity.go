package cloud

import "strings"

// defaultCapacityIndicators are the known phrases and service codes OCI uses to
// signal a transient host-capacity shortage. Provider error text is not a stable
// contract, so the list can be replaced from configuration.
var defaultCapacityIndicators = []string{
	"out of host capacity",
	"no sufficient compute capacity",
	"insufficient capacity",
	"capacity exceeded",
	"OutOfCapacity",
	"capacity.exceeded",
}

// CapacityClassifier decides whether a failed launch attempt represents a transient
// capacity shortage (retryable) or anything else (fatal). It is pure and total:
// input that matches no indicator classifies as non-retryable, which is the
// conservative choice since ambiguous errors should be surfaced, not swallowed.
type CapacityClassifier struct {
	indicators []string
}

// NewCapacityClassifier builds a classifier from the given indicator list.
// An empty list selects the built-in OCI capacity phrases.
func NewCapacityClassifier(indicators []string) CapacityClassifier {
	if len(indicators) == 0 {
		indicators = defaultCapacityIndicators
	}
	lowered := make([]string, len(indicators))
	for i, s := range indicators {
		lowered[i] = strings.ToLower(s)
	}
	return CapacityClassifier{indicators: lowered}
}

// IsCapacityError reports whether the error message or the provider error code
// contains any known capacity-exhaustion indicator. Matching is case-insensitive;
// a match on either field is sufficient.
func (c CapacityClassifier) IsCapacityError(message, code string) bool {
	message = strings.ToLower(message)
	code = strings.ToLower(code)
	for _, indicator := range c.indicators {
		if indicator == "" {
			continue
		}
		if strings.Contains(message, indicator) || strings.Contains(code, indicator) {
			return true
		}
	}
	return false
}
