package migrate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/migrate"
)

// emptyCMS answers every query with null and fails on writes.
type emptyCMS struct {
	queryErr error
	cfg      cms.Config
}

func (c *emptyCMS) Query(_ context.Context, _ string, _ map[string]any, out any) error {
	if c.queryErr != nil {
		return c.queryErr
	}
	return json.Unmarshal([]byte("null"), out)
}

func (c *emptyCMS) Create(context.Context, any) (string, error) {
	return "", errors.New("unexpected create")
}

func (c *emptyCMS) Patch(context.Context, string, cms.Patch) error {
	return errors.New("unexpected patch")
}

func commandWith(t *testing.T, cmd migrate.Command, client *emptyCMS) (migrate.Command, *observer.ObservedLogs) {
	t.Helper()
	t.Setenv("SANITY_PROJECT_ID", "abc123")
	t.Setenv("SANITY_API_TOKEN", "")
	t.Setenv("SANITY_USE_CDN", "")
	core, logs := observer.New(zapcore.DebugLevel)
	cmd.Logger = zap.New(core)
	cmd.NewClient = func(cfg cms.Config) cms.Client {
		client.cfg = cfg
		return client
	}
	return cmd, logs
}

func TestCommand_DryRunWithoutToken(t *testing.T) {
	client := &emptyCMS{}
	cmd, logs := commandWith(t, migrate.VendorCommand(), client)
	var stderr bytes.Buffer

	code := cmd.Main(context.Background(), []string{"--dry-run", "--verbose"}, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.False(t, client.cfg.UseCDN)
	finished := logs.FilterMessage("migration finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, true, finished[0].ContextMap()["dry_run"])
	assert.EqualValues(t, 0, finished[0].ContextMap()["couples_scanned"])
}

func TestCommand_WriteRunRequiresToken(t *testing.T) {
	cmd, _ := commandWith(t, migrate.VenueCommand(), &emptyCMS{})
	var stderr bytes.Buffer

	code := cmd.Main(context.Background(), nil, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "SANITY_API_TOKEN")
}

func TestCommand_CMSErrorExitsNonZero(t *testing.T) {
	cmd, logs := commandWith(t, migrate.VenueCommand(), &emptyCMS{queryErr: errors.New("401 unauthorized")})
	t.Setenv("SANITY_API_TOKEN", "sk_write")
	var stderr bytes.Buffer

	code := cmd.Main(context.Background(), nil, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "401 unauthorized")
	assert.Equal(t, 1, logs.FilterMessage("migration failed").Len())
}

func TestCommand_BadUsage(t *testing.T) {
	cmd, _ := commandWith(t, migrate.VendorCommand(), &emptyCMS{})
	var stderr bytes.Buffer

	assert.Equal(t, 2, cmd.Main(context.Background(), []string{"--force"}, &stderr))
	assert.Equal(t, 2, cmd.Main(context.Background(), []string{"extra"}, &stderr))
	assert.Equal(t, 0, cmd.Main(context.Background(), []string{"-h"}, &stderr))
}
