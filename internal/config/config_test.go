package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
backtest:
  initial_capital: 500000
  stop_loss_pct: 0.03
  target_pct: 0.08
  position_size_pct: 0.20
  annualization: 252

marketdata:
  provider: static
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Backtest.InitialCapital != 500000 {
		t.Errorf("expected initial_capital 500000, got %f", cfg.Backtest.InitialCapital)
	}

	if cfg.MarketData.Provider != "static" {
		t.Errorf("expected static, got %s", cfg.MarketData.Provider)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Backtest.InitialCapital != 100000 {
		t.Errorf("expected default initial_capital 100000, got %f", cfg.Backtest.InitialCapital)
	}

	if cfg.Backtest.Annualization != 252 {
		t.Errorf("expected default annualization 252, got %f", cfg.Backtest.Annualization)
	}

	if !cfg.Metrics.Enabled {
		t.Error("expected metrics enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := *Defaults()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero capital",
			mutate:  func(c *Config) { c.Backtest.InitialCapital = 0 },
			wantErr: true,
		},
		{
			name:    "stop loss above 1",
			mutate:  func(c *Config) { c.Backtest.StopLossPct = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative target",
			mutate:  func(c *Config) { c.Backtest.TargetPct = -0.1 },
			wantErr: true,
		},
		{
			name:    "zero annualization",
			mutate:  func(c *Config) { c.Backtest.Annualization = 0 },
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.MarketData.Provider = "bloomberg" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
