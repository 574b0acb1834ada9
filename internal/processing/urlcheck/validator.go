// Package urlcheck screens destination URLs before they are shortened, so a
// short link can never be used to reach loopback, private or otherwise
// internal addresses.
package urlcheck

import (
	"context"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/AndrewN04/url-shortner/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultMaxLength = 2048

var blockedHostnames = map[string]struct{}{
	"localhost":             {},
	"localhost.localdomain": {},
	"ip6-localhost":         {},
	"ip6-loopback":          {},
}

// Resolver is satisfied by *net.Resolver.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

type Validator struct {
	resolver  Resolver
	maxLength int
}

// NewValidator returns a Validator backed by resolver. A nil resolver uses
// net.DefaultResolver and a non-positive maxLength uses DefaultMaxLength.
func NewValidator(resolver Resolver, maxLength int) *Validator {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Validator{resolver: resolver, maxLength: maxLength}
}

// ValidateFormat runs the syntactic checks only. It performs no I/O.
func (v *Validator) ValidateFormat(raw string) Verdict {
	verdict, _ := v.checkFormat(raw)
	return verdict
}

// Validate runs ValidateFormat and then, for hostnames that are not IP
// literals, resolves the name and rejects it when any returned address is
// private. A lookup failure rejects the URL.
func (v *Validator) Validate(ctx context.Context, raw string) Verdict {
	verdict, hostname := v.checkFormat(raw)
	if !verdict.OK || hostname == "" {
		return verdict
	}

	ctx, span := telemetry.Tracer().Start(ctx, "urlcheck.resolve")
	defer span.End()
	span.SetAttributes(attribute.String("url.host", hostname))

	addrs, err := v.resolver.LookupNetIP(ctx, "ip4", hostname)
	if err != nil || len(addrs) == 0 {
		addrs, err = v.resolver.LookupNetIP(ctx, "ip6", hostname)
		if err != nil || len(addrs) == 0 {
			if err != nil {
				span.RecordError(err)
			}
			span.SetStatus(codes.Error, "unresolvable")
			return reject(ReasonUnresolvable, msgUnresolvable)
		}
	}

	for _, addr := range addrs {
		if isPrivateAddr(addr) {
			span.SetAttributes(attribute.String("url.blocked_addr", addr.String()))
			return reject(ReasonResolvesPrivate, msgResolvesPrivate)
		}
	}

	span.SetAttributes(attribute.Int("url.addr_count", len(addrs)))
	return verdict
}

// checkFormat returns the verdict and, when the host is a name that still
// needs resolving, the lowercased hostname.
func (v *Validator) checkFormat(raw string) (Verdict, string) {
	if utf8.RuneCountInString(raw) > v.maxLength {
		return reject(ReasonTooLong, msgTooLong(v.maxLength)), ""
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() {
		return reject(ReasonInvalidFormat, msgInvalidFormat), ""
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return reject(ReasonScheme, msgScheme), ""
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return reject(ReasonMissingHost, msgMissingHost), ""
	}

	if _, blocked := blockedHostnames[strings.TrimSuffix(hostname, ".")]; blocked {
		return reject(ReasonBlockedHost, msgBlockedHost), ""
	}

	addr, literal, valid := parseLiteralIP(hostname)
	if literal && !valid {
		return reject(ReasonInvalidFormat, msgInvalidFormat), ""
	}
	if literal && isPrivateAddr(addr) {
		return reject(ReasonPrivateAddress, msgPrivateAddress), ""
	}

	hostForm := hostname
	if literal {
		hostForm = addr.WithZone("").String()
		if addr.Is6() {
			hostForm = "[" + hostForm + "]"
		}
	}

	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		hostForm += ":" + port
	}
	u.Host = hostForm

	if u.Opaque == "" && u.Path == "" {
		u.Path = "/"
	}

	if literal {
		return accept(u.String()), ""
	}
	return accept(u.String()), hostname
}
