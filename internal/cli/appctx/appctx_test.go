package appctx

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lherron/scomadm/internal/db"
	"github.com/lherron/scomadm/internal/testutil"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"SCOM_DSN", "SCOM_DSN_FILE", "DATABASE_URL", "SCOM_LOG_LEVEL", "SCOM_LOG_FORMAT", "SCOM_OUTPUT"} {
		t.Setenv(name, "")
	}
}

func testCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().String("dsn", "", "Database connection string")
	cmd.Flags().String("output", "", "Output format")
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func TestBootstrap_ConfigOnly(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "never.db")
	dsn := "sqlite://" + path
	cmd := testCommand(t, map[string]string{"dsn": dsn})

	app, err := Bootstrap(cmd, ConfigOnly())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, dsn, app.Config.Database.DSN)
	assert.Nil(t, app.DB)
	assert.Nil(t, app.Store)
	assert.NotNil(t, app.Log)
	assert.NoFileExists(t, path)
}

func TestBootstrap_WithDB(t *testing.T) {
	isolateEnv(t)
	_, dsn := testutil.TempDB(t)
	cmd := testCommand(t, map[string]string{"dsn": dsn, "output": "json"})

	app, err := Bootstrap(cmd, DefaultOptions())
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.DB)
	require.NotNil(t, app.Store)
	assert.Equal(t, db.DialectSQLite, app.DB.Dialect())
	assert.Equal(t, "json", app.Config.Output)
}

func TestBootstrap_EnvDSN(t *testing.T) {
	isolateEnv(t)
	_, dsn := testutil.TempDB(t)
	t.Setenv("SCOM_DSN", dsn)

	app, err := Bootstrap(testCommand(t, nil), DefaultOptions())
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.DB)
}

func TestBootstrap_InvalidOutput(t *testing.T) {
	isolateEnv(t)
	cmd := testCommand(t, map[string]string{"output": "xml"})

	_, err := Bootstrap(cmd, ConfigOnly())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestBootstrap_ConnectionFailure(t *testing.T) {
	isolateEnv(t)
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "missing", "x.db")

	_, err := Bootstrap(testCommand(t, map[string]string{"dsn": dsn}), DefaultOptions())
	require.Error(t, err)
	assert.True(t, db.IsConnectionError(err))
}

func TestApp_CloseIdempotent(t *testing.T) {
	isolateEnv(t)
	_, dsn := testutil.TempDB(t)

	app, err := Bootstrap(testCommand(t, map[string]string{"dsn": dsn}), DefaultOptions())
	require.NoError(t, err)

	app.Close()
	app.Close()
	assert.Nil(t, app.DB)
}

func TestWithApp_ClosesAfterFailure(t *testing.T) {
	isolateEnv(t)
	_, dsn := testutil.TempDB(t)
	cmd := testCommand(t, map[string]string{"dsn": dsn})

	var seen *App
	boom := errors.New("boom")
	run := WithApp(DefaultOptions(), func(app *App, cmd *cobra.Command, args []string) error {
		seen = app
		return boom
	})

	err := run(cmd, nil)
	require.Error(t, err)

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, seen)
	assert.Nil(t, seen.DB, "connection must be closed after the command returns")
}

func TestWithApp_BootstrapFailureIsRunError(t *testing.T) {
	isolateEnv(t)
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "missing", "x.db")
	called := false

	run := WithApp(DefaultOptions(), func(app *App, cmd *cobra.Command, args []string) error {
		called = true
		return nil
	})

	err := run(testCommand(t, map[string]string{"dsn": dsn}), nil)
	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.False(t, called)
}
