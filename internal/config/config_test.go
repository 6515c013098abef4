package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("не удалось записать конфигурацию: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
trading:
  symbols:
    - BTCUSDT
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if cfg.Exchange.Name != "binance" {
		t.Errorf("биржа по умолчанию: ожидалось binance, получено %q", cfg.Exchange.Name)
	}
	if cfg.Strategy.Threshold != 0.0005 {
		t.Errorf("порог по умолчанию: ожидалось 0.0005, получено %v", cfg.Strategy.Threshold)
	}
	if cfg.Strategy.HoldTimeHours != 8 {
		t.Errorf("время удержания по умолчанию: ожидалось 8, получено %v", cfg.Strategy.HoldTimeHours)
	}
	if got := cfg.Strategy.CycleHours; len(got) != 3 || got[0] != 0 || got[1] != 8 || got[2] != 16 {
		t.Errorf("циклы по умолчанию: ожидалось [0 8 16], получено %v", got)
	}
	if cfg.Bot.PollIntervalSeconds != 60 {
		t.Errorf("интервал опроса по умолчанию: ожидалось 60, получено %v", cfg.Bot.PollIntervalSeconds)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
exchange:
  name: okx
trading:
  symbols:
    - ETHUSDT
strategy:
  threshold: 0.001
  max_hours_to_wait: 2
  cycle_hours: [0, 12]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if cfg.Exchange.Name != "okx" {
		t.Errorf("ожидалась биржа okx, получено %q", cfg.Exchange.Name)
	}
	if cfg.Strategy.Threshold != 0.001 {
		t.Errorf("ожидался порог 0.001, получено %v", cfg.Strategy.Threshold)
	}
	if cfg.Strategy.MaxHoursToWait != 2 {
		t.Errorf("ожидалось ожидание 2, получено %v", cfg.Strategy.MaxHoursToWait)
	}
	if got := cfg.Strategy.CycleHours; len(got) != 2 || got[1] != 12 {
		t.Errorf("ожидались циклы [0 12], получено %v", got)
	}
}

func TestLoadRequiresSymbols(t *testing.T) {
	path := writeConfig(t, `
exchange:
  name: binance
`)

	if _, err := Load(path); err == nil {
		t.Fatal("ожидалась ошибка при отсутствии символов")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "нет.yaml")); err == nil {
		t.Fatal("ожидалась ошибка чтения файла")
	}
}
