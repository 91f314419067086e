// Package mocks provides hand-written mock implementations of the store
// and token service interfaces for use in unit tests. Mocks for the service
// layer interfaces live with their consumers instead, since this package is
// itself imported by the service layer's tests.
package mocks
