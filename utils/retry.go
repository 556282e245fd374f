package utils

import (
	"log"
	"time"
)

// Retry runs fn up to attempts times, sleeping a fixed backoff between
// failures, and returns the last error if every attempt fails. It is meant
// for transient resource-acquisition failures (such as opening a database
// connection), not for retrying work that has already started.
func Retry(attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		log.Printf("attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt < attempts {
			time.Sleep(backoff)
		}
	}
	return err
}
