package scanjob

import (
	"errors"
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"
	"osintscan/pkg/domain"
	"strings"
	"unicode"
)

const maxDomainLength = 253

// NormalizeTarget returns the canonical form of a target so the same
// identifier is always scanned the same way:
//   - email: lower-cased address without a display name
//   - domain: lower-cased host without scheme, path or trailing dot
//   - ip: canonical textual form of the address
//   - phone: digits with an optional leading '+', separators removed
//   - username: trimmed, a leading '@' removed
//
// An error is returned when the target cannot be interpreted as its type.
func NormalizeTarget(targetType domain.TargetType, raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return "", errors.New("target is empty")
	}

	switch targetType {
	case domain.TargetTypeEmail:
		return normalizeEmail(target)
	case domain.TargetTypeDomain:
		return normalizeDomain(target)
	case domain.TargetTypeIP:
		addr, err := netip.ParseAddr(target)
		if err != nil {
			return "", fmt.Errorf("could not parse IP address: %w", err)
		}

		return addr.Unmap().String(), nil
	case domain.TargetTypePhone:
		return normalizePhone(target)
	case domain.TargetTypeUsername:
		target = strings.TrimPrefix(target, "@")
		if target == "" || strings.IndexFunc(target, unicode.IsSpace) >= 0 {
			return "", errors.New("username must be a single word")
		}

		return target, nil
	default:
		return "", fmt.Errorf("unsupported target type %q", targetType)
	}
}

func normalizeEmail(target string) (string, error) {
	addr, err := mail.ParseAddress(target)
	if err != nil {
		return "", fmt.Errorf("could not parse email address: %w", err)
	}
	if addr.Name != "" || addr.Address != target {
		return "", errors.New("email address must not have a display name")
	}

	return strings.ToLower(addr.Address), nil
}

func normalizeDomain(target string) (string, error) {
	host := strings.ToLower(target)
	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil {
			return "", fmt.Errorf("could not parse domain: %w", err)
		}
		host = u.Hostname()
	}
	host = strings.TrimSuffix(host, ".")

	if len(host) == 0 || len(host) > maxDomainLength || !strings.Contains(host, ".") {
		return "", fmt.Errorf("invalid domain %q", target)
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "", fmt.Errorf("invalid domain %q", target)
		}
		for _, r := range label {
			if r != '-' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return "", fmt.Errorf("invalid domain %q", target)
			}
		}
	}

	return host, nil
}

func normalizePhone(target string) (string, error) {
	var b strings.Builder
	for i, r := range target {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("invalid phone number %q", target)
		}
	}

	digits := strings.TrimPrefix(b.String(), "+")
	if len(digits) < 5 || len(digits) > 15 {
		return "", fmt.Errorf("invalid phone number %q", target)
	}

	return b.String(), nil
}
