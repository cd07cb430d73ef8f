/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/triviabox/games"
)

func newTestServer(t *testing.T, cfg *Config) *httptest.Server {
	t.Helper()

	catalog, err := newCatalog(cfg)
	if err != nil {
		t.Fatalf("newCatalog: %v", err)
	}

	errs := make(chan error, 16)
	srv := httptest.NewServer(newRouter(cfg, catalog, errs))
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return resp, string(body)
}

func TestHomePageListsGames(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	for _, id := range []string{games.AgeGameID, games.ChronologyGameID, games.MatchGameID} {
		if !strings.Contains(body, `href="/games/`+id+`"`) {
			t.Errorf("home page missing link to %s", id)
		}
	}
	if !strings.Contains(body, "Próximamente") {
		t.Error("home page missing coming-soon section")
	}
	if resp.Header.Get("Content-Security-Policy") == "" {
		t.Error("missing security headers")
	}
}

func TestHomePageWithPrefix(t *testing.T) {
	cfg := newTestConfig()
	cfg.prefix = "/trivia"
	srv := newTestServer(t, cfg)

	resp, body := get(t, srv.URL+"/trivia/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, `href="/trivia/games/`+games.AgeGameID+`"`) {
		t.Error("game links do not carry the prefix")
	}
	if !strings.Contains(body, "/trivia/assets/app.css") {
		t.Error("stylesheet does not carry the prefix")
	}
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/healthz", http.StatusOK, "text/plain", "Ok"},
		{"/robots.txt", http.StatusOK, "text/plain", "Disallow: /games/"},
		{"/version", http.StatusOK, "text/plain", releaseVersion},
		{"/assets/app.css", http.StatusOK, "text/css", ":root"},
		{"/assets/app.js", http.StatusOK, "text/javascript", "WebSocket"},
		{"/assets/home.html", http.StatusNotFound, "", ""},
		{"/assets/missing.css", http.StatusNotFound, "", ""},
		{"/favicons/favicon.svg", http.StatusOK, "image/svg+xml", "<svg"},
		{"/games/" + games.AgeGameID, http.StatusOK, "text/html", `data-ws="/games/` + games.AgeGameID + `/ws"`},
		{"/games/" + games.MatchGameID, http.StatusOK, "text/html", "Pelimojis"},
		{"/games/no-such-game", http.StatusNotFound, "text/html", ""},
		{"/games/" + games.AgeGameID + "/qr", http.StatusOK, "image/png", ""},
		{"/games/no-such-game/qr", http.StatusNotFound, "", ""},
		{"/nowhere", http.StatusNotFound, "text/html", "Volver al inicio"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.contentType != "" && !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", resp.Header.Get("Content-Type"), tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestProfileRoutesOnlyWhenEnabled(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	if resp, _ := get(t, srv.URL+"/pprof/"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("pprof served without --profile: %d", resp.StatusCode)
	}

	cfg := newTestConfig()
	cfg.profile = true
	srv = newTestServer(t, cfg)
	if resp, _ := get(t, srv.URL+"/pprof/"); resp.StatusCode != http.StatusOK {
		t.Errorf("pprof index status = %d, want 200", resp.StatusCode)
	}
}

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1500, "1.5 kB"},
		{2_000_000, "2.0 MB"},
	}

	for _, tt := range tests {
		if got := humanReadableSize(tt.in); got != tt.want {
			t.Errorf("humanReadableSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImagesFromPoolDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "images", "celebrities"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "images", "celebrities", "shakira.svg"), []byte("<svg></svg>"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig()
	cfg.poolDir = dir
	srv := newTestServer(t, cfg)

	tests := []struct {
		path   string
		status int
	}{
		{"/images/celebrities/shakira.svg", http.StatusOK},
		{"/images/celebrities/missing.svg", http.StatusNotFound},
		{"/images/../celebrities.yaml", http.StatusNotFound},
		{"/images/notes.txt", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if resp, _ := get(t, srv.URL+tt.path); resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestNoImagesWithoutPoolDir(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	if resp, _ := get(t, srv.URL+"/images/celebrities/shakira.webp"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRunServerReportsListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()

	srv := &http.Server{Addr: busy.Addr().String(), Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- runServer(context.Background(), newTestConfig(), srv) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("runServer() returned nil for a port in use")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServer() kept running after the listener failed")
	}
}

func TestRunServerStopsOnCancel(t *testing.T) {
	free, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := free.Addr().String()
	free.Close()

	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, newTestConfig(), srv) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServer() = %v after cancel, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("runServer() did not stop after cancel")
	}
}
