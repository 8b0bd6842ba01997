// Package integration holds end-to-end tests that run the services against real Postgres and Redis containers.
package integration
