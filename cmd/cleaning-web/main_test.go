package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elpatron68/cleaning-ui/internal/config"
)

func TestResolveListenAddress(t *testing.T) {
	t.Run("defaults to :8080", func(t *testing.T) {
		t.Setenv("CLEANWEB_LISTEN", "")
		got := resolveListenAddress(&config.Config{}, "")
		if got != ":8080" {
			t.Fatalf("expected :8080, got %s", got)
		}
	})

	t.Run("uses config value", func(t *testing.T) {
		t.Setenv("CLEANWEB_LISTEN", "")
		cfg := &config.Config{Listen: "127.0.0.1:9000"}
		got := resolveListenAddress(cfg, "")
		if got != "127.0.0.1:9000" {
			t.Fatalf("expected config listen, got %s", got)
		}
	})

	t.Run("env overrides config", func(t *testing.T) {
		t.Setenv("CLEANWEB_LISTEN", "0.0.0.0:7777")
		cfg := &config.Config{Listen: "127.0.0.1:9000"}
		got := resolveListenAddress(cfg, "")
		if got != "0.0.0.0:7777" {
			t.Fatalf("expected env override, got %s", got)
		}
	})

	t.Run("flag overrides env and config", func(t *testing.T) {
		t.Setenv("CLEANWEB_LISTEN", "0.0.0.0:7777")
		cfg := &config.Config{Listen: "127.0.0.1:9000"}
		got := resolveListenAddress(cfg, "[::1]:6060")
		if got != "[::1]:6060" {
			t.Fatalf("expected flag override, got %s", got)
		}
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestExportToStdoutWithVerify(t *testing.T) {
	path := writeConfig(t, "calendar:\n  timezone: UTC\n")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "export", "--verify"})
	require.NoError(t, cmd.Execute())

	body := out.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Equal(t, 13, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "X-WR-TIMEZONE:UTC\r\n")
	assert.Contains(t, body, "T090000Z\r\n")
}

func TestExportToFileUsesCatalogFile(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`daily:
  - id: feed_cat
    name: Feed the cat
    time: 2 min
    priority: high
weekly:
  Saturday:
    - id: windows
      name: Clean windows
      time: 40 min
`), 0o600))
	t.Setenv("CLEANWEB_CATALOG", catalogPath)
	path := writeConfig(t, "calendar:\n  timezone: UTC\n  startTime: \"07:30\"\n")

	out := filepath.Join(dir, "schedule.ics")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"-c", path, "export", "-o", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	body := string(data)
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "SUMMARY:Feed the cat\r\n")
	assert.Contains(t, body, "RRULE:FREQ=WEEKLY;BYDAY=SA\r\n")
	assert.Contains(t, body, "T073000Z\r\n")
}

func TestSetupRejectsBadConfig(t *testing.T) {
	path := writeConfig(t, "calendar:\n  timezone: Mars/Olympus\n")
	_, err := setup(path)
	assert.Error(t, err)

	path = writeConfig(t, "calendar:\n  startTime: noon\n")
	_, err = setup(path)
	assert.Error(t, err)
}

func TestUserStoreFromConfig(t *testing.T) {
	store, err := userStore(config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	cfg := config.Default()
	cfg.Users = []config.UserConfig{{Username: "alice", PasswordHash: "not-a-hash"}}
	_, err = userStore(cfg)
	assert.Error(t, err)
}
