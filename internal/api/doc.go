// Package api provides the HTTP handlers for the charitable API: account
// registration and login, role profile registration, and the task lifecycle
// endpoints. Handlers depend on service interfaces and translate service
// errors into per-endpoint HTTP status codes.
package api
