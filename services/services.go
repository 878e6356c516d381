package services

import (
	"time"

	"blog-api/models"
	"blog-api/repositories"
)

// Clock returns the current time. Services take one so tests can pin
// published_at and last_login.
type Clock func() time.Time

func defaultClock(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// notFound converts a missing-row error into the 404 error for what.
func notFound(err error, what string) error {
	if repositories.IsNotFound(err) {
		return models.ErrorNotFound{Message: what + " not found"}
	}
	return err
}

func boolValue(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func requireAuth(actor *models.Actor) error {
	if !actor.Authenticated() {
		return models.ErrorUnauthorized{Message: "Authentication credentials were not provided"}
	}
	return nil
}
