// Package alias resolves human-readable recipient aliases (name@domain)
// to Quantix addresses published in DNS.
//
// The owner of domain publishes a TXT record at <name>._quantix.<domain>
// whose value is "qtx=" followed by the address.
package alias

import (
	"fmt"
	"net"
	"strings"
)

const (
	// Label is the DNS label under which alias records live.
	Label = "_quantix"

	// RecordPrefix marks the TXT value carrying the address.
	RecordPrefix = "qtx="
)

// DNSResolver defines the TXT lookup used for alias resolution.
// This allows tests to mock DNS resolution.
type DNSResolver interface {
	LookupTXT(name string) ([]string, error)
}

type defaultDNSResolver struct{}

func (d *defaultDNSResolver) LookupTXT(name string) ([]string, error) {
	return net.LookupTXT(name)
}

// DefaultDNSResolver is the production resolver using the net package.
var DefaultDNSResolver DNSResolver = &defaultDNSResolver{}

// IsAlias reports whether s looks like name@domain rather than an address.
func IsAlias(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}

// Parse splits an alias into its lowercased name and domain.
func Parse(alias string) (name, domain string, err error) {
	name, domain, ok := strings.Cut(strings.TrimSpace(alias), "@")
	if !ok || name == "" || domain == "" || strings.Contains(domain, "@") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAlias, alias)
	}
	if strings.ContainsAny(name, ". \t") || !strings.Contains(domain, ".") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAlias, alias)
	}
	return strings.ToLower(name), strings.ToLower(strings.TrimSuffix(domain, ".")), nil
}

// RecordName returns the DNS name queried for alias.
func RecordName(name, domain string) string {
	return name + "." + Label + "." + domain
}

// Resolve returns the address published for alias. A nil resolver uses
// DefaultDNSResolver. The first qtx= record wins.
func Resolve(alias string, resolver DNSResolver) (string, error) {
	name, domain, err := Parse(alias)
	if err != nil {
		return "", err
	}
	if resolver == nil {
		resolver = DefaultDNSResolver
	}

	qname := RecordName(name, domain)
	txts, err := resolver.LookupTXT(qname)
	if err != nil {
		return "", fmt.Errorf("%w: TXT lookup for %s: %w", ErrDNSLookupFailed, qname, err)
	}

	for _, txt := range txts {
		txt = strings.TrimSpace(txt)
		if addr, ok := strings.CutPrefix(txt, RecordPrefix); ok {
			addr = strings.TrimSpace(addr)
			if addr != "" {
				return addr, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoAddressRecord, qname)
}

// ResolveRecipient resolves recipient when it is an alias and returns it
// unchanged otherwise.
func ResolveRecipient(recipient string, resolver DNSResolver) (string, error) {
	if !IsAlias(recipient) {
		return recipient, nil
	}
	return Resolve(recipient, resolver)
}
