package retry

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"
)

func TestFirebirdErrorClassifier_IsTransient(t *testing.T) {
	classifier := NewFirebirdErrorClassifier()

	tests := []struct {
		name        string
		err         error
		isTransient bool
	}{
		{"nil", nil, false},
		{"connection refused op error", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{"connection reset op error", &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, true},
		{"host unreachable", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.EHOSTUNREACH}, true},
		{"permanent dns failure", &net.DNSError{Err: "no such host", Name: "nohost", IsNotFound: true}, false},
		{"temporary dns failure", &net.DNSError{Err: "server misbehaving", Name: "db", IsTemporary: true}, true},
		{"unexpected eof", fmt.Errorf("handshake: %w", io.ErrUnexpectedEOF), true},
		{"network request message", errors.New("Unable to complete network request to host \"db\"."), true},
		{"connection lost", errors.New("connection lost to database"), true},
		{"wrapped refused text", fmt.Errorf("failed to connect: %w", errors.New("dial tcp 127.0.0.1:3050: connect: connection refused")), true},
		{"bad credentials", errors.New("Your user name and password are not defined. Ask your database administrator to set up a Firebird login."), false},
		{"missing database file", errors.New("I/O error during \"open\" operation for file \"/db/x.fdb\"\nError while trying to open file\nNo such file or directory"), false},
		{"syntax error", errors.New("Dynamic SQL Error\nSQL error code = -104\nToken unknown"), false},
		{"generic error", errors.New("something unrelated"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.isTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.isTransient)
			}
		})
	}
}
