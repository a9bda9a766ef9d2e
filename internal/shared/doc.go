// Package shared holds helpers used across the guest-complaint packages.
//
// The testutil subpackage provides a capturing slog handler and builders
// that write small complaint workbooks to a temporary directory, so loader,
// service and handler tests exercise real xlsx files.
package shared
