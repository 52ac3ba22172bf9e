//go:build integration

package integration

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/gateway"
	"github.com/NordCoder/upwatch/internal/repository/badgerstore"
	"github.com/NordCoder/upwatch/internal/session"
)

/********** ENV CONFIG **********/

type Cfg struct {
	BaseURL    string
	HealthPath string
	Password   string
}

func LoadCfg() Cfg {
	return Cfg{
		BaseURL:    getenv("IT_API_BASE", "http://127.0.0.1:8000"),
		HealthPath: getenv("IT_API_HEALTH", "/api/v1/health/"),
		Password:   getenv("IT_PASSWORD", "it-supersecret"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func WaitHealthz(t *testing.T, url string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				t.Logf("[it] healthz OK: %s", url)
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("[it] healthz failed: %s", url)
}

func NewClient(t *testing.T, cfg Cfg) *gateway.Client {
	t.Helper()
	log := zap.NewNop()
	if testing.Verbose() {
		log, _ = zap.NewDevelopment()
	}
	return gateway.New(gateway.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   15 * time.Second,
		UserAgent: "upwatch-it",
	}, nil, log)
}

// NewStore opens a badger-backed session store in a temp dir and restores it.
func NewStore(t *testing.T, dir string) (*session.Store, func()) {
	t.Helper()
	storage, err := badgerstore.Open(dir)
	if err != nil {
		t.Fatalf("[badger] open %s: %v", dir, err)
	}
	store := session.NewStore(storage, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store.Restore(ctx)
	return store, func() { _ = storage.Close() }
}

func RandUsername() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("it-%d-%x", time.Now().Unix()%1_000_000, b)
}

type Nav struct {
	Logins     int
	Dashboards int
}

func (n *Nav) RedirectToLogin() { n.Logins++ }
func (n *Nav) ShowDashboard()   { n.Dashboards++ }
