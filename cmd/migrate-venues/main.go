// Command migrate-venues replaces the free-text venue on couple documents
// with a reference to a canonical venue document. Region and type are
// derived from the couple's location and the venue name.
//
// Usage:
//
//	migrate-venues [--dry-run] [--verbose]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sdweddings/backend/internal/migrate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := migrate.VenueCommand().Main(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
