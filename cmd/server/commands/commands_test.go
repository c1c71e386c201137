package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_WithoutCommandServes(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	_, err := execute(t)
	if err == nil {
		t.Fatal("Expected the default command to fail without admin settings")
	}
	if !strings.Contains(err.Error(), "failed to load configuration") || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Errorf("Expected a serve configuration error, got %v", err)
	}
}

func TestMigrate_VersionOnSQLite(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "blog.db"))
	t.Setenv("LOG_LEVEL", "disabled")

	if _, err := execute(t, "migrate", "up"); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}

	out, err := execute(t, "migrate", "version")
	if err != nil {
		t.Fatalf("migrate version failed: %v", err)
	}
	if !strings.Contains(out, "version: 1") || !strings.Contains(out, "dirty: false") {
		t.Errorf("Unexpected version output %q", out)
	}
}
