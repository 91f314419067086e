// Package api contains the HTTP handlers, request/response models, and
// error mapping for the public REST surface. Handlers stay thin: they
// decode and validate input, call a service, and translate the result
// (or error) into an HTTP response. All business rules, including the
// ownership policy, live in the service layer.
package api
