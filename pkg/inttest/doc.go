// Package inttest supports integration tests that need a real database.
// SetupDB starts a disposable PostgreSQL container, waits until it accepts
// connections, runs the schema migrations and removes the container when the
// test finishes.
package inttest
