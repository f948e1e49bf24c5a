package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdirTemp runs the test inside a scratch directory so logs/ never lands in the source tree
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})
}

// TestSetupLoggingDisabledByDefault verifies the logger is discarded without -debug
func TestSetupLoggingDisabledByDefault(t *testing.T) {
	chdirTemp(t)

	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("expected nil log file when debug=false")
		logFile.Close()
	}
	if log.Writer() != io.Discard {
		t.Errorf("expected log output to be io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("expected no logs directory")
	}
}

// TestSetupLoggingEnabledWithDebug verifies the file is created and receives output
func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	chdirTemp(t)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	log.Println("test log message")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "test log message") {
		t.Errorf("expected message in log, got %q", data)
	}

	if out := log.Writer(); out == os.Stdout || out == os.Stderr {
		t.Error("log output should not be stdout or stderr")
	}
}

// TestSetupLoggingRotation verifies an oversized log is moved aside
func TestSetupLoggingRotation(t *testing.T) {
	chdirTemp(t)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("write large log: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("read logs directory: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("expected a rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat new log: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("expected fresh log, got %d bytes", info.Size())
	}
}

// TestFrontendExplicit verifies explicit frontends bypass tty detection
func TestFrontendExplicit(t *testing.T) {
	for _, name := range []string{"terminal", "window", "headless"} {
		if got := frontend(name); got != name {
			t.Errorf("frontend(%q) = %q", name, got)
		}
	}
}
