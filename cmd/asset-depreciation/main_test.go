package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/asset-depreciation/internal/server"
	"go.uber.org/zap"
)

const testConfigPath = "../../test/test_config.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"))
	err := root.Execute()
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("expected %q, got %q", version, out)
	}
}

func TestScheduleCommand(t *testing.T) {
	out, err := execute(t, "schedule", "--config", testConfigPath, "--output-format", "pretty")
	if err != nil {
		t.Fatalf("schedule error = %v", err)
	}

	for _, expected := range []string{
		"Delivery truck",
		"Rack server",
		"Office fit-out",
		"$1,800.00",
		"$4,000.00",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("schedule output missing %q:\n%s", expected, out)
		}
	}
}

func TestScheduleCommandUsesConfiguredFormat(t *testing.T) {
	out, err := execute(t, "schedule", "--config", testConfigPath)
	if err != nil {
		t.Fatalf("schedule error = %v", err)
	}
	if !strings.Contains(out, "1800.00") || strings.Contains(out, "$") {
		t.Fatalf("expected configured CSV output, got:\n%s", out)
	}
}

func TestReportCommand(t *testing.T) {
	out, err := execute(t, "report", "--config", testConfigPath, "--year", "2024", "--output-format", "json")
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	for _, expected := range []string{`"year": 2024`, `"totalDepreciation"`, `"Office fit-out"`} {
		if !strings.Contains(out, expected) {
			t.Errorf("report output missing %q:\n%s", expected, out)
		}
	}
}

func TestReportCommandWithSQLiteStorage(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}
	contents := strings.Replace(string(data), "driver: memory",
		"driver: sqlite\n  path: "+filepath.Join(dir, "assets.db"), 1)
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	for i := 0; i < 2; i++ {
		out, err := execute(t, "report", "--config", configPath, "--year", "2024", "--output-format", "csv")
		if err != nil {
			t.Fatalf("report run %d error = %v", i, err)
		}
		// Re-running imports by ID, so the truck appears once.
		if n := strings.Count(out, "Delivery truck"); n != 1 {
			t.Fatalf("run %d: expected one truck line, got %d:\n%s", i, n, out)
		}
	}
}

func TestCommandWritesOutFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "schedules.xlsx")
	if _, err := execute(t, "schedule", "--config", testConfigPath, "--output-format", "xlsx", "--out", outPath); err != nil {
		t.Fatalf("schedule error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("expected an xlsx (zip) file")
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Missing config", []string{"schedule", "--config", "nonexistent.yaml"}},
		{"Bad output format", []string{"schedule", "--config", testConfigPath, "--output-format", "docx"}},
		{"Unexpected argument", []string{"report", "extra", "--config", testConfigPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("expected error but got none")
			}
		})
	}
}

func TestReportYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		flag, configured, expected int
	}{
		{2020, 2024, 2020},
		{0, 2024, 2024},
		{0, 0, 2026},
	}
	for _, tt := range tests {
		if got := reportYear(tt.flag, tt.configured, now); got != tt.expected {
			t.Errorf("reportYear(%d, %d) = %d, expected %d", tt.flag, tt.configured, got, tt.expected)
		}
	}
}

func TestServeSeedsAndShutsDown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	address := listener.Addr().String()
	_ = listener.Close()

	serverConfig, err := server.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	serverConfig.Address = address
	serverConfig.SeedConfig = testConfigPath

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, serverConfig, zap.NewNop()) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + address + "/api/assets/truck")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server did not start: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected seeded asset, got status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve() did not return after cancellation")
	}
}
