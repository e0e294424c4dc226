package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Settings.Client.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default Client.BaseURL, got %q", store.Settings.Client.BaseURL)
	}
	if store.Settings.Client.DeadlineSeconds != 90 {
		t.Errorf("Expected default Client.DeadlineSeconds 90, got %d", store.Settings.Client.DeadlineSeconds)
	}
	if store.Settings.Client.Attempts != 3 {
		t.Errorf("Expected default Client.Attempts 3, got %d", store.Settings.Client.Attempts)
	}
	if store.Settings.Client.BackoffSeconds != 1 {
		t.Errorf("Expected default Client.BackoffSeconds 1, got %d", store.Settings.Client.BackoffSeconds)
	}
	if store.Settings.AI.Provider != "none" {
		t.Errorf("Expected default AI.Provider 'none', got %q", store.Settings.AI.Provider)
	}
	if store.Settings.Server.Addr != ":8000" {
		t.Errorf("Expected default Server.Addr ':8000', got %q", store.Settings.Server.Addr)
	}
	if store.Settings.KeyMap.NextPage != "l" {
		t.Errorf("Expected default KeyMap.NextPage 'l', got %q", store.Settings.KeyMap.NextPage)
	}
	if store.Settings.Theme.Accent != "205" {
		t.Errorf("Expected default Theme.Accent '205', got %q", store.Settings.Theme.Accent)
	}
	if filepath.Base(store.Settings.HistoryFile) != "history.db" {
		t.Errorf("Expected default history db path, got %q", store.Settings.HistoryFile)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file not created")
	}
}

func TestLoad_ValuesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "client:\n  base_url: https://digest.example.com\n  attempts: 5\nhistory_file: " +
		filepath.Join(tmpDir, "subs.db") + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Settings.Client.BaseURL != "https://digest.example.com" {
		t.Fatalf("Client.BaseURL = %q", store.Settings.Client.BaseURL)
	}
	if store.Settings.Client.Attempts != 5 {
		t.Fatalf("Client.Attempts = %d, want 5", store.Settings.Client.Attempts)
	}
	if store.Settings.HistoryFile != filepath.Join(tmpDir, "subs.db") {
		t.Fatalf("HistoryFile = %q", store.Settings.HistoryFile)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	_ = os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600)

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for corrupt config read, got nil")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	store.Settings.Client.BaseURL = "https://other.example.com"
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Settings.Client.BaseURL != "https://other.example.com" {
		t.Fatalf("Client.BaseURL = %q after reload", reloaded.Settings.Client.BaseURL)
	}
}
