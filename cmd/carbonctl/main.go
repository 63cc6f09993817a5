// Package main implements carbonctl, a command-line client for the Blue Carbon project store.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stdin)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		var shown *shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "carbonctl:", err)
		}
		os.Exit(1)
	}
}

// shownError marks a failure the view has already reported to the user.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}
