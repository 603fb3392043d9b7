// Package service implements the application's business operations on top of
// the domain entities and store interfaces: account registration and
// resolution, role profile registration, and the task lifecycle with its
// authorization rules.
package service
