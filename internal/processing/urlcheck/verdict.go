package urlcheck

import "fmt"

// Reason identifies why a destination URL was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTooLong
	ReasonInvalidFormat
	ReasonScheme
	ReasonMissingHost
	ReasonBlockedHost
	ReasonPrivateAddress
	ReasonResolvesPrivate
	ReasonUnresolvable
)

var reasonLabels = map[Reason]string{
	ReasonNone:            "none",
	ReasonTooLong:         "too_long",
	ReasonInvalidFormat:   "invalid_format",
	ReasonScheme:          "scheme",
	ReasonMissingHost:     "missing_host",
	ReasonBlockedHost:     "blocked_host",
	ReasonPrivateAddress:  "private_address",
	ReasonResolvesPrivate: "resolves_private",
	ReasonUnresolvable:    "unresolvable",
}

// String returns a stable label, used for metrics and logs.
func (r Reason) String() string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Verdict is the outcome of validating a destination URL. Normalized is only
// set when OK is true; Message is only set when it is false.
type Verdict struct {
	OK         bool
	Normalized string
	Reason     Reason
	Message    string
}

func accept(normalized string) Verdict {
	return Verdict{OK: true, Normalized: normalized}
}

func reject(reason Reason, message string) Verdict {
	return Verdict{Reason: reason, Message: message}
}

const (
	msgInvalidFormat   = "Invalid URL format"
	msgScheme          = "Only http and https URLs are allowed"
	msgMissingHost     = "URL must have a hostname"
	msgBlockedHost     = "Localhost URLs are not allowed"
	msgPrivateAddress  = "Private IP addresses are not allowed"
	msgResolvesPrivate = "URL resolves to a private IP address"
	msgUnresolvable    = "Unable to resolve hostname"
)

func msgTooLong(max int) string {
	return fmt.Sprintf("URL exceeds maximum length of %d characters", max)
}
