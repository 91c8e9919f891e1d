package cli

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/kwartayo/internal/auth"
	"github.com/evcraddock/kwartayo/internal/config"
	"github.com/evcraddock/kwartayo/internal/kv"
	"github.com/evcraddock/kwartayo/internal/metrics"
)

func TestOpenStorageMemory(t *testing.T) {
	store, closer, err := openStorage(context.Background(), config.StorageConfig{Backend: config.BackendMemory})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := store.(*kv.Memory); !ok {
		t.Errorf("store = %T, want *kv.Memory", store)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kw.db")

	store, closer, err := openStorage(ctx, config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	if err := store.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Errorf("get = %q, %v", got, err)
	}
}

func TestOpenStorageRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, _, err := openStorage(ctx, config.StorageConfig{
		Backend: config.BackendRedis,
		Redis:   config.RedisConfig{Addr: "127.0.0.1:1"},
	})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestSweepRecordsRemovedKeys(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Set(ctx, "session:old", "1", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mem.Set(ctx, "session:live", "1", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	m := metrics.New()
	sweep(ctx, auth.NewSessionStore(mem, 0), m)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if body := w.Body.String(); !strings.Contains(body, "kwartayo_storage_keys_swept_total 1") {
		t.Errorf("swept counter not updated:\n%s", body)
	}
	if _, err := mem.Get(ctx, "session:live"); err != nil {
		t.Errorf("live key removed: %v", err)
	}
}

func TestStartSweeperRejectsBadSchedule(t *testing.T) {
	if _, err := startSweeper("every tuesday", auth.NewSessionStore(kv.NewMemory(), 0), metrics.New()); err == nil {
		t.Fatal("expected schedule error")
	}
}

func TestServeFlagsOverrideConfig(t *testing.T) {
	cmd := newServeCmd()
	if err := cmd.ParseFlags([]string{"--addr", ":9999", "--storage", "sqlite", "--dev"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	var f serveFlags
	f.addr, _ = cmd.Flags().GetString("addr")
	f.storage, _ = cmd.Flags().GetString("storage")
	f.dev, _ = cmd.Flags().GetBool("dev")

	cfg := config.DefaultConfig()
	f.apply(cmd, cfg)

	if cfg.Server.Addr != ":9999" || cfg.Storage.Backend != config.BackendSQLite || !cfg.Server.DevMode {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Storage.SQLitePath != "" {
		t.Errorf("unset --db changed sqlite path to %q", cfg.Storage.SQLitePath)
	}
}

func TestRunServeStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
