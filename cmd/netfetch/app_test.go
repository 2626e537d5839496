package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/netclient/internal/config"
	"github.com/urfave/cli/v2"
)

func writeEnvironments(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	content := "environments:\n" +
		"  - name: local\n" +
		"    scheme: http\n" +
		"    host: " + u.Host + "\n" +
		"    headers:\n" +
		"      token: \"1234567\"\n" +
		"    queries:\n" +
		"      - name: apiKey\n" +
		"        value: \"123456\"\n"
	file := filepath.Join(t.TempDir(), "environments.yaml")
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write environments file: %v", err)
	}
	return file
}

func runApp(t *testing.T, file string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := 0

	prevExiter, prevErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = &stderr
	defer func() {
		cli.OsExiter, cli.ErrWriter = prevExiter, prevErrWriter
	}()

	cfg := &config.Config{
		EnvironmentsFile: file,
		Environment:      "local",
		TransportTimeout: 2 * time.Second,
	}
	app := newApp(cfg, nil)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	_ = app.RunContext(context.Background(), append([]string{"netfetch"}, args...))
	return stdout.String(), stderr.String(), code
}

func TestNetfetchGETPrintsDecodedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "name=network&apiKey=123456" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if r.Header.Get("token") != "1234567" || r.Header.Get("additionToken") != "abc" {
			t.Errorf("unexpected headers %#v", r.Header)
		}
		_, _ = w.Write([]byte(`{"count":[1,2]}`))
	}))
	defer srv.Close()

	out, errOut, code := runApp(t, writeEnvironments(t, srv), "-q", "name=network", "-H", "additionToken=abc", "/path/to/resource")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"count"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNetfetchPOSTBodyAndYAML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %q", r.Method, r.Header.Get("Content-Type"))
		}
		_, _ = w.Write([]byte("name: network\n"))
	}))
	defer srv.Close()

	out, errOut, code := runApp(t, writeEnvironments(t, srv), "-X", "post", "--body", `{"name":"network"}`, "--format", "yaml", "/items")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"name": "network"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNetfetchHTMLTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Network Home</title></head></html>`))
	}))
	defer srv.Close()

	out, errOut, code := runApp(t, writeEnvironments(t, srv), "--format", "html", "/")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != "Network Home" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNetfetchReportsErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"count":[1]}`))
	}))
	defer srv.Close()

	out, errOut, code := runApp(t, writeEnvironments(t, srv), "/missing")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if out != "" || !strings.Contains(errOut, "client_error") {
		t.Fatalf("stdout=%q stderr=%q", out, errOut)
	}
}

func TestNetfetchRejectsGETWithBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Errorf("request should not be sent")
	}))
	defer srv.Close()

	_, _, code := runApp(t, writeEnvironments(t, srv), "--body", `{"a":1}`, "/p")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestNetfetchUsageErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()
	file := writeEnvironments(t, srv)

	if _, _, code := runApp(t, file); code != 2 {
		t.Fatalf("missing path: exit code = %d, want 2", code)
	}
	if _, _, code := runApp(t, file, "--format", "toml", "/p"); code != 2 {
		t.Fatalf("bad format: exit code = %d, want 2", code)
	}
	if _, _, code := runApp(t, file, "--env", "qa", "/p"); code != 1 {
		t.Fatalf("unknown env: exit code = %d, want 1", code)
	}
}

func TestParseQueryAndHeaders(t *testing.T) {
	items := parseQuery([]string{"name=network", "debug", "=skip", "empty="})
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %#v", items)
	}
	if items[1].HasValue() || items[2].ValueOr("x") != "" {
		t.Fatalf("unexpected items %#v", items)
	}

	headers := parseHeaders([]string{"a = 1", "b"})
	if headers["a"] != "1" || headers["b"] != "" {
		t.Fatalf("unexpected headers %#v", headers)
	}
	if parseHeaders(nil) != nil {
		t.Fatalf("expected nil headers")
	}
}
