// Package errors defines the error kinds surfaced by node-inspector.
//
// Every failure reaching a caller can be classified with one of the Is*
// predicates below. Wrapped and joined errors keep their kind: the
// predicates walk every cause.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	crerrors "github.com/cockroachdb/errors"
)

// ConnectionError is returned when a database session cannot be established:
// malformed URL, unreachable host, rejected credentials or unknown driver.
type ConnectionError struct {
	URL    string
	Driver string
	cause  error
}

func NewConnectionError(url, driver string, cause error) *ConnectionError {
	return &ConnectionError{URL: url, Driver: driver, cause: cause}
}

func (e *ConnectionError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("failed to connect to %q using driver %q", e.URL, e.Driver)
	}
	return fmt.Sprintf("failed to connect to %q using driver %q: %v", e.URL, e.Driver, e.cause)
}

func (e *ConnectionError) Unwrap() error { return e.cause }

func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

// ConnectionClosedError is returned when a closed connection is used.
type ConnectionClosedError struct{}

func NewConnectionClosedError() *ConnectionClosedError {
	return &ConnectionClosedError{}
}

func (e *ConnectionClosedError) Error() string {
	return "connection is closed"
}

func IsConnectionClosedError(err error) bool {
	var e *ConnectionClosedError
	return errors.As(err, &e)
}

// QueryError is returned when a table scan fails or names an unknown table.
type QueryError struct {
	Table string
	cause error
}

func NewQueryError(table string, cause error) *QueryError {
	return &QueryError{Table: table, cause: cause}
}

func NewUnknownTableError(table string) *QueryError {
	return &QueryError{Table: table, cause: crerrors.Newf("unknown table %q", table)}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query on table %s failed: %v", e.Table, e.cause)
}

func (e *QueryError) Unwrap() error { return e.cause }

func IsQueryError(err error) bool {
	var e *QueryError
	return errors.As(err, &e)
}

// NotFoundError is returned by strict single-row lookups that match nothing.
type NotFoundError struct {
	Resource string
	Key      string
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// ConfigurationError is returned when a component is used before the
// settings it depends on are provided.
type ConfigurationError struct {
	Setting string
	msg     string
}

func NewConfigurationError(setting, msg string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, msg: msg}
}

func NewProxyNotConfiguredError() *ConfigurationError {
	return NewConfigurationError("bridge.proxyURL", "management bridge proxy endpoint is not configured")
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Setting, e.msg)
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// NetworkError wraps transport failures talking to the management bridge.
type NetworkError struct {
	Endpoint string
	cause    error
}

func NewNetworkError(endpoint string, cause error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, cause: cause}
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.cause)
}

func (e *NetworkError) Unwrap() error { return e.cause }

func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// RemoteError is returned when the proxy or the agent answers with a
// non-success status.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func NewRemoteError(endpoint string, statusCode int, message string) *RemoteError {
	return &RemoteError{Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

func (e *RemoteError) Error() string {
	status := http.StatusText(e.StatusCode)
	if status == "" {
		status = "unknown status"
	}
	if e.Message == "" {
		return fmt.Sprintf("%s returned %d (%s)", e.Endpoint, e.StatusCode, status)
	}
	return fmt.Sprintf("%s returned %d (%s): %s", e.Endpoint, e.StatusCode, status, e.Message)
}

func IsRemoteError(err error) bool {
	var e *RemoteError
	return errors.As(err, &e)
}

// KeystoreError is returned when a keystore cannot be read or decrypted.
type KeystoreError struct {
	Alias string
	cause error
}

func NewKeystoreError(alias string, cause error) *KeystoreError {
	return &KeystoreError{Alias: alias, cause: cause}
}

func (e *KeystoreError) Error() string {
	if e.Alias == "" {
		return fmt.Sprintf("failed to load keystore: %v", e.cause)
	}
	return fmt.Sprintf("failed to read keystore entry %q: %v", e.Alias, e.cause)
}

func (e *KeystoreError) Unwrap() error { return e.cause }

func IsKeystoreError(err error) bool {
	var e *KeystoreError
	return errors.As(err, &e)
}
