package sui

import "github.com/cockroachdb/errors"

var (
	// ErrConfig is returned when local wallet configuration files are
	// missing, unreadable, or malformed.
	ErrConfig = errors.New("wallet configuration error")
	// ErrNetwork is returned when the node or faucet endpoint is
	// unreachable or replies with something that cannot be decoded.
	ErrNetwork = errors.New("network error")
	// ErrFaucet is returned when the faucet service rejects a funding
	// request, e.g. because the address is rate limited.
	ErrFaucet = errors.New("faucet rejected the request")
	// ErrInsufficientFunds is returned when no qualifying coin exists and
	// the faucet fallback did not produce one either.
	ErrInsufficientFunds = errors.New("no coin with sufficient balance")
	// ErrBuild is returned for invalid transaction construction, such as
	// referencing a command result that does not exist yet or mutating a
	// finalized builder.
	ErrBuild = errors.New("transaction build error")
	// ErrSigning is returned when the keystore has no key for the
	// requested identity.
	ErrSigning = errors.New("signing error")
	// ErrSubmission is returned when the network rejects a submitted
	// transaction.
	ErrSubmission = errors.New("transaction submission rejected")
)
