// Command migrate-vendors replaces inline vendor objects on couple documents
// with references to canonical vendor documents, creating those on first
// sight and keeping each vendor's weddingCount in step.
//
// Usage:
//
//	migrate-vendors [--dry-run] [--verbose]
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
	code := migrate.VendorCommand().Main(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
