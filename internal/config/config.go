package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Exchange ExchangeConfig `yaml:"exchange"`
	Trading  TradingConfig  `yaml:"trading"`
	Strategy StrategyConfig `yaml:"strategy"`
	Bot      BotConfig      `yaml:"bot"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ExchangeConfig содержит настройки подключения к бирже
type ExchangeConfig struct {
	Name      string `yaml:"name"` // binance, okx, bybit
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Testnet   bool   `yaml:"testnet"`
}

// TradingConfig содержит настройки торговли
type TradingConfig struct {
	Symbols        []string `yaml:"symbols"`
	Interval       string   `yaml:"interval"`
	OrderBookDepth int      `yaml:"orderbook_depth"`
	CandleLimit    int      `yaml:"candle_limit"`
}

// StrategyConfig содержит параметры стратегии фандинг-арбитража
type StrategyConfig struct {
	Name            string  `yaml:"name"`
	Threshold       float64 `yaml:"threshold"`
	HoldTimeHours   float64 `yaml:"hold_time_hours"`
	MaxHoursToWait  float64 `yaml:"max_hours_to_wait"`
	OrderSizeUSD    float64 `yaml:"order_size_usd"`
	DefaultSlippage float64 `yaml:"default_slippage"`
	CycleHours      []int   `yaml:"cycle_hours"`
	MAShortPeriod   int     `yaml:"ma_short_period"`
	MALongPeriod    int     `yaml:"ma_long_period"`
}

// BotConfig содержит настройки цикла опроса
type BotConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	CycleTimeoutSeconds int `yaml:"cycle_timeout_seconds"`
}

// NotifyConfig содержит настройки каналов уведомлений.
// Канал включается, если заполнены его поля.
type NotifyConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	FilePath string         `yaml:"file_path"`
	Webhook  string         `yaml:"webhook_url"`
}

// TelegramConfig настройки Telegram-бота
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

// LoggingConfig настройки логирования
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load загружает конфигурацию из файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла конфигурации: %w", err)
	}

	config.applyDefaults()

	if len(config.Trading.Symbols) == 0 {
		return nil, fmt.Errorf("не задан ни один торговый символ")
	}

	return &config, nil
}

// applyDefaults заполняет незаданные параметры значениями по умолчанию
func (c *Config) applyDefaults() {
	if c.Exchange.Name == "" {
		c.Exchange.Name = "binance"
	}
	if c.Trading.Interval == "" {
		c.Trading.Interval = "1h"
	}
	if c.Trading.OrderBookDepth == 0 {
		c.Trading.OrderBookDepth = 20
	}
	if c.Trading.CandleLimit == 0 {
		c.Trading.CandleLimit = 100
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "funding-arbitrage"
	}
	if c.Strategy.Threshold == 0 {
		c.Strategy.Threshold = 0.0005
	}
	if c.Strategy.HoldTimeHours == 0 {
		c.Strategy.HoldTimeHours = 8
	}
	if c.Strategy.MaxHoursToWait == 0 {
		c.Strategy.MaxHoursToWait = 4
	}
	if c.Strategy.OrderSizeUSD == 0 {
		c.Strategy.OrderSizeUSD = 1000
	}
	if c.Strategy.DefaultSlippage == 0 {
		c.Strategy.DefaultSlippage = 0.0005
	}
	if len(c.Strategy.CycleHours) == 0 {
		c.Strategy.CycleHours = []int{0, 8, 16}
	}
	if c.Strategy.MAShortPeriod == 0 {
		c.Strategy.MAShortPeriod = 9
	}
	if c.Strategy.MALongPeriod == 0 {
		c.Strategy.MALongPeriod = 21
	}
	if c.Bot.PollIntervalSeconds == 0 {
		c.Bot.PollIntervalSeconds = 60
	}
	if c.Bot.CycleTimeoutSeconds == 0 {
		c.Bot.CycleTimeoutSeconds = 45
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
