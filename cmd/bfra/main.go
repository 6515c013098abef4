package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/skalibog/bfra/internal/bot"
	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/internal/exchange"
	"github.com/skalibog/bfra/internal/notify"
	"github.com/skalibog/bfra/internal/runner"
	"github.com/skalibog/bfra/internal/strategy"
	"github.com/skalibog/bfra/internal/strategy/fundingarb"
	"github.com/skalibog/bfra/internal/strategy/movingavg"
	"github.com/skalibog/bfra/internal/telegram"
	"github.com/skalibog/bfra/pkg/logger"
)

func main() {
	// Обработка флагов командной строки
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	// Проверяем наличие файла конфигурации
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "файл конфигурации не найден: %s\n", *configPath)
		os.Exit(1)
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level)
	defer logger.GetLogger().Sync()
	logger.Info("Загружена конфигурация",
		zap.String("path", *configPath),
		zap.String("exchange", cfg.Exchange.Name),
		zap.Any("symbols", cfg.Trading.Symbols))

	// Создаем контекст с возможностью отмены
	ctx, cancel := context.WithCancel(context.Background())

	// Настраиваем обработку сигналов завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nЗавершение работы...")
		cancel()
		time.Sleep(2 * time.Second) // Даем горутинам время на завершение
		os.Exit(0)
	}()

	// Инициализируем клиент биржи
	client, err := exchange.New(cfg.Exchange)
	if err != nil {
		logger.Fatal("Ошибка инициализации клиента биржи", zap.Error(err))
	}

	// Выбираем стратегию
	strat, err := buildStrategy(cfg)
	if err != nil {
		logger.Fatal("Ошибка инициализации стратегии", zap.Error(err))
	}
	logger.Info("Стратегия выбрана",
		zap.String("strategy", strat.Name()),
		zap.String("exchange", client.Name()))

	// Собираем каналы уведомлений
	notifier := buildNotifier(cfg.Notify)

	// Создаем раннер и контроллер цикла
	run := runner.New(client, strat, cfg.Trading)
	state := bot.NewState()
	controller := bot.NewController(run, notifier, state, cfg.Bot)

	// Командный Telegram-бот опционален
	if cfg.Notify.Telegram.Token != "" {
		commandBot := telegram.NewCommandBot(cfg.Notify.Telegram, controller)
		go commandBot.Run(ctx)
	}

	// Запускаем цикл опроса в основном потоке (блокирующий вызов)
	controller.Run(ctx)
}

// buildStrategy создает стратегию по имени из конфигурации
func buildStrategy(cfg *config.Config) (strategy.Strategy, error) {
	switch cfg.Strategy.Name {
	case "funding-arbitrage":
		return fundingarb.New(cfg.Strategy), nil
	case "moving-average":
		return movingavg.New(cfg.Strategy), nil
	default:
		return nil, fmt.Errorf("неизвестная стратегия: %s", cfg.Strategy.Name)
	}
}

// buildNotifier собирает нотификатор из настроенных каналов
func buildNotifier(cfg config.NotifyConfig) *notify.Notifier {
	var senders []notify.Sender
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Telegram.Token, cfg.Telegram.ChatID))
	}
	if cfg.FilePath != "" {
		senders = append(senders, notify.NewFileSender(cfg.FilePath))
	}
	if cfg.Webhook != "" {
		senders = append(senders, notify.NewWebhookSender(cfg.Webhook))
	}
	return notify.NewNotifier(senders...)
}
