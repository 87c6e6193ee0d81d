package alias

import "errors"

var (
	// ErrInvalidAlias indicates the alias is not of the form name@domain.
	ErrInvalidAlias = errors.New("alias: invalid alias")

	// ErrDNSLookupFailed indicates a DNS TXT lookup failed.
	ErrDNSLookupFailed = errors.New("alias: DNS lookup failed")

	// ErrDNSSECValidationFailed indicates the upstream resolver did not authenticate the answer.
	ErrDNSSECValidationFailed = errors.New("alias: DNSSEC validation failed")

	// ErrNoAddressRecord indicates no qtx= TXT record was published for the alias.
	ErrNoAddressRecord = errors.New("alias: no address record")
)
