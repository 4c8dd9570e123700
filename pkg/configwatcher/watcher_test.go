package configwatcher

import (
	"ap_quiz_backend/internal/config"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  mode: release
log:
  level: %s
session:
  secret: 0123456789abcdef0123456789abcdef
results:
  backend: memory
storage:
  local_path: %s
`

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	static := filepath.Join(dir, "static")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(baseConfig, "info", static)), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 注册完成
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(baseConfig, "warn", static)), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "warn", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
