package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "echoprobe") {
		t.Errorf("GetConfigDir() = %v, should contain 'echoprobe'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Nodes == nil {
		t.Error("NewRegistry().Nodes should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.Broadcast != DefaultBroadcast {
		t.Errorf("Preferences.Broadcast = %v, want %v", reg.Preferences.Broadcast, DefaultBroadcast)
	}
	if reg.Preferences.Port != 3610 {
		t.Errorf("Preferences.Port = %v, want 3610", reg.Preferences.Port)
	}
	if reg.Preferences.ScanTimeout != 5 {
		t.Errorf("Preferences.ScanTimeout = %v, want 5", reg.Preferences.ScanTimeout)
	}
}

func TestRegistryEnsureNode(t *testing.T) {
	reg := NewRegistry()

	// First call should create the node
	node1 := reg.EnsureNode("192.168.0.42")
	if node1 == nil {
		t.Fatal("EnsureNode() returned nil")
	}

	// Second call should return the same node
	node2 := reg.EnsureNode("192.168.0.42")
	if node1 != node2 {
		t.Error("EnsureNode() should return same instance for same IP")
	}

	// Different IP should create a new node
	node3 := reg.EnsureNode("192.168.0.43")
	if node1 == node3 {
		t.Error("EnsureNode() should create new instance for different IP")
	}
}

func TestRegistryUpdateNodeLastSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateNodeLastSeen("192.168.0.42")
	after := time.Now()

	node := reg.GetNode("192.168.0.42")
	if node == nil {
		t.Fatal("Node should exist after UpdateNodeLastSeen()")
	}
	if node.LastSeen.Before(before) || node.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", node.LastSeen, before, after)
	}
}

func TestRegistrySetNodeNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetNodeNickname("192.168.0.42", "Living room AC")

	node := reg.GetNode("192.168.0.42")
	if node == nil {
		t.Fatal("Node should exist after SetNodeNickname()")
	}
	if node.Nickname != "Living room AC" {
		t.Errorf("Nickname = %v, want 'Living room AC'", node.Nickname)
	}
}

func TestParseRegistry(t *testing.T) {
	data := []byte(`version: 1
nodes:
  "192.168.0.42":
    nickname: "Living room AC"
preferences:
  broadcast: "192.168.0.255"
  port: 3610
  scan_timeout: 10
`)

	reg, err := parseRegistry(data)
	if err != nil {
		t.Fatalf("parseRegistry() error = %v", err)
	}

	node := reg.GetNode("192.168.0.42")
	if node == nil {
		t.Fatal("Node should exist in parsed registry")
	}
	if node.Nickname != "Living room AC" {
		t.Errorf("Nickname = %v, want 'Living room AC'", node.Nickname)
	}
	if reg.Preferences.Broadcast != "192.168.0.255" {
		t.Errorf("Broadcast = %v, want 192.168.0.255", reg.Preferences.Broadcast)
	}
	if reg.Preferences.ScanTimeout != 10 {
		t.Errorf("ScanTimeout = %v, want 10", reg.Preferences.ScanTimeout)
	}
}

func TestParseRegistryFillsDefaults(t *testing.T) {
	reg, err := parseRegistry([]byte("version: 1\n"))
	if err != nil {
		t.Fatalf("parseRegistry() error = %v", err)
	}

	if reg.Nodes == nil {
		t.Error("Nodes should be initialized")
	}
	if reg.Preferences.Broadcast != DefaultBroadcast {
		t.Errorf("Broadcast = %v, want default %v", reg.Preferences.Broadcast, DefaultBroadcast)
	}
	if reg.Preferences.Port != DefaultPort {
		t.Errorf("Port = %v, want default %v", reg.Preferences.Port, DefaultPort)
	}
	if reg.Preferences.ScanTimeout != DefaultScanTimeout {
		t.Errorf("ScanTimeout = %v, want default %v", reg.Preferences.ScanTimeout, DefaultScanTimeout)
	}
}

func TestParseRegistryRejectsUnknownVersion(t *testing.T) {
	if _, err := parseRegistry([]byte("version: 2\n")); err == nil {
		t.Error("parseRegistry() should reject version 2")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.SetNodeNickname("192.168.0.42", "Floor heating")
	reg.UpdateNodeLastSeen("192.168.0.42")

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	loaded, err := parseRegistry(data)
	if err != nil {
		t.Fatalf("parseRegistry() error = %v", err)
	}

	node := loaded.GetNode("192.168.0.42")
	if node == nil {
		t.Fatal("Node should survive a round trip")
	}
	if node.Nickname != "Floor heating" {
		t.Errorf("Nickname = %v, want 'Floor heating'", node.Nickname)
	}
	if node.LastSeen.IsZero() {
		t.Error("LastSeen should survive a round trip")
	}
}
