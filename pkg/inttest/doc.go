// Package inttest enables writing of integration tests. Setup Docker containers for dependencies
// like PostgreSQL and RabbitMQ and a fake admin service. Every setup function ensures the
// dependency is ready before returning, ensures resources are cleaned up after the tests are
// finished and return a client ready to interact with it.
package inttest
