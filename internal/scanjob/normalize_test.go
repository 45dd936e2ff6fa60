package scanjob_test

import (
	"osintscan/internal/scanjob"
	"osintscan/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTarget(t *testing.T) { //nolint: lll
	cases := []struct {
		name       string
		targetType domain.TargetType
		in         string
		out        string
		ok         bool
	}{
		{name: "email lowercased", targetType: domain.TargetTypeEmail, in: "  Alice@Example.COM ", out: "alice@example.com", ok: true},
		{name: "email with display name", targetType: domain.TargetTypeEmail, in: "Alice <alice@example.com>", ok: false},
		{name: "email without domain", targetType: domain.TargetTypeEmail, in: "alice", ok: false},
		{name: "domain lowercased", targetType: domain.TargetTypeDomain, in: "WWW.Example.com", out: "www.example.com", ok: true},
		{name: "domain trailing dot", targetType: domain.TargetTypeDomain, in: "example.com.", out: "example.com", ok: true},
		{name: "domain from URL", targetType: domain.TargetTypeDomain, in: "https://Example.com/login?x=1", out: "example.com", ok: true},
		{name: "domain without dot", targetType: domain.TargetTypeDomain, in: "localhost", ok: false},
		{name: "domain with space", targetType: domain.TargetTypeDomain, in: "exa mple.com", ok: false},
		{name: "domain empty label", targetType: domain.TargetTypeDomain, in: "example..com", ok: false},
		{name: "ipv4 leading zeros", targetType: domain.TargetTypeIP, in: "192.168.001.1", ok: false},
		{name: "ipv4 canonical", targetType: domain.TargetTypeIP, in: " 10.0.0.1 ", out: "10.0.0.1", ok: true},
		{name: "ipv6 canonical", targetType: domain.TargetTypeIP, in: "2001:DB8:0:0:0:0:0:1", out: "2001:db8::1", ok: true},
		{name: "ipv4 mapped", targetType: domain.TargetTypeIP, in: "::ffff:10.0.0.1", out: "10.0.0.1", ok: true},
		{name: "invalid ip", targetType: domain.TargetTypeIP, in: "999.1.1.1", ok: false},
		{name: "phone separators", targetType: domain.TargetTypePhone, in: "+1 (555) 010-9999", out: "+15550109999", ok: true},
		{name: "phone letters", targetType: domain.TargetTypePhone, in: "+1 555 CALL", ok: false},
		{name: "phone too short", targetType: domain.TargetTypePhone, in: "123", ok: false},
		{name: "username at sign", targetType: domain.TargetTypeUsername, in: " @octocat ", out: "octocat", ok: true},
		{name: "username with space", targetType: domain.TargetTypeUsername, in: "octo cat", ok: false},
		{name: "empty", targetType: domain.TargetTypeUsername, in: "   ", ok: false},
		{name: "unknown type", targetType: "bitcoin", in: "1BoatSLRHtKNngkdXEeobR76b53LETtpyT", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scanjob.NormalizeTarget(tc.targetType, tc.in)
			if !tc.ok {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, got)
		})
	}
}
