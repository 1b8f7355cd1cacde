package dlp

import (
	"fmt"
	"strings"

	"cloud.google.com/go/dlp/apiv2/dlppb"
)

// DefaultLikelihood is the conservative detection threshold used when no
// override is configured.
const DefaultLikelihood = dlppb.Likelihood_POSSIBLE

// ParseLikelihood maps a configuration string to a detection likelihood.
// Matching is case-insensitive; the empty string yields DefaultLikelihood.
func ParseLikelihood(s string) (dlppb.Likelihood, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultLikelihood, nil
	case "VERY_UNLIKELY":
		return dlppb.Likelihood_VERY_UNLIKELY, nil
	case "UNLIKELY":
		return dlppb.Likelihood_UNLIKELY, nil
	case "POSSIBLE":
		return dlppb.Likelihood_POSSIBLE, nil
	case "LIKELY":
		return dlppb.Likelihood_LIKELY, nil
	case "VERY_LIKELY":
		return dlppb.Likelihood_VERY_LIKELY, nil
	default:
		return DefaultLikelihood, fmt.Errorf("unknown likelihood %q", s)
	}
}
