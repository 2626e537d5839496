package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "production" {
		t.Fatalf("Environment = %q", cfg.Environment)
	}
	if cfg.EnvironmentsFile != "./configs/environments.yaml" {
		t.Fatalf("EnvironmentsFile = %q", cfg.EnvironmentsFile)
	}
	if cfg.TransportTimeout != 30*time.Second {
		t.Fatalf("TransportTimeout = %v", cfg.TransportTimeout)
	}
}

func TestLoadFromEnvironmentVariables(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("TRANSPORT_TIMEOUT", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "staging" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.TransportTimeout != 5*time.Second {
		t.Fatalf("TransportTimeout = %v", cfg.TransportTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TRANSPORT_TIMEOUT", "0")
	if _, err := load(viper.New()); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadRejectsBlankEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "  ")
	if _, err := load(viper.New()); err == nil {
		t.Fatalf("expected error for blank environment")
	}
}
