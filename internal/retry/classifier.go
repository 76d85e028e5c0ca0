package retry

import (
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var _ dbmeta.ErrorClassifier = (*FirebirdErrorClassifier)(nil)

// transientPatterns are lower-cased fragments of error messages produced by
// the Firebird wire protocol client and the network stack for conditions
// that may clear up on their own.
var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection lost",
	"connection shutdown",
	"connection rejected",
	"unable to complete network request",
	"error reading data from the connection",
	"error writing data to the connection",
	"network is unreachable",
	"no route to host",
	"i/o timeout",
	"broken pipe",
	"unexpected eof",
	"server is shutting down",
	"database shutdown",
}

// fatalPatterns win over transientPatterns: retrying cannot fix them.
var fatalPatterns = []string{
	"your user name and password are not defined",
	"password",
	"no permission",
	"i/o error during",
	"no such file or directory",
	"is not a valid database",
	"unsupported on-disk structure",
}

// FirebirdErrorClassifier implements ErrorClassifier for Firebird connections.
type FirebirdErrorClassifier struct{}

// NewFirebirdErrorClassifier creates a new Firebird error classifier.
func NewFirebirdErrorClassifier() *FirebirdErrorClassifier {
	return &FirebirdErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *FirebirdErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if isNetworkError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range fatalPatterns {
		if strings.Contains(msg, p) {
			return false
		}
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// isNetworkError checks for network-level errors.
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		// A name that does not resolve now will not resolve in 100ms either.
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	if opErr.Timeout() {
		return true
	}
	return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
		errors.Is(opErr.Err, syscall.ECONNRESET) ||
		errors.Is(opErr.Err, syscall.ENETUNREACH) ||
		errors.Is(opErr.Err, syscall.EHOSTUNREACH)
}
