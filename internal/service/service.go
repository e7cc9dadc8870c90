// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → binds forms, writes JSON
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services depend on the repository interfaces, never on sqldb, so the
// tests in this package run against in-memory fakes.
//
// ERRORS:
// Services return *apperror.AppError values for every condition a client
// can act on, wrapped with a "service/<name>:" prefix. Store errors pass
// through wrapped, so errors.Is still finds their category.
package service

import "fmt"

func wrap(svc, op string, err error) error {
	return fmt.Errorf("service/%s: %s: %w", svc, op, err)
}
