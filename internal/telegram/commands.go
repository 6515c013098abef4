package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skalibog/bfra/internal/bot"
	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/pkg/logger"
)

// CommandBot принимает команды управления ботом через Telegram:
// /pause, /resume, /status, /run.
type CommandBot struct {
	token      string
	chatID     string
	controller *bot.Controller
	client     *http.Client
	offset     int64
}

// NewCommandBot создает командный бот
func NewCommandBot(cfg config.TelegramConfig, controller *bot.Controller) *CommandBot {
	return &CommandBot{
		token:      cfg.Token,
		chatID:     cfg.ChatID,
		controller: controller,
		client:     &http.Client{Timeout: 40 * time.Second},
	}
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

// Run запускает long-poll цикл получения команд, блокируется до отмены контекста
func (b *CommandBot) Run(ctx context.Context) {
	logger.Info("Командный Telegram-бот запущен")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Командный Telegram-бот остановлен")
			return
		default:
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Warn("Ошибка получения обновлений Telegram", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			b.offset = u.UpdateID + 1
			if u.Message == nil {
				continue
			}
			reply := b.handleCommand(ctx, strings.TrimSpace(u.Message.Text))
			if reply == "" {
				continue
			}
			if err := b.sendMessage(ctx, reply); err != nil {
				logger.Warn("Ошибка отправки ответа Telegram", zap.Error(err))
			}
		}
	}
}

// handleCommand выполняет команду и возвращает текст ответа
func (b *CommandBot) handleCommand(ctx context.Context, text string) string {
	switch text {
	case "/pause":
		b.controller.Pause()
		return "Бот на паузе"
	case "/resume":
		b.controller.Resume()
		return "Бот возобновлен"
	case "/run":
		go b.controller.RunOnce(ctx)
		return "Цикл запущен"
	case "/status":
		st := b.controller.Status()
		lastRun := "никогда"
		if !st.LastRun.IsZero() {
			lastRun = st.LastRun.Format("02.01.2006 15:04:05 UTC")
		}
		return fmt.Sprintf("Работает: %v\nПауза: %v\nЦиклов: %d\nОшибок: %d\nПоследний цикл: %s",
			st.Running, st.Paused, st.CycleCount, st.ErrorCount, lastRun)
	default:
		return ""
	}
}

// getUpdates выполняет long-poll запрос getUpdates
func (b *CommandBot) getUpdates(ctx context.Context) ([]update, error) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?timeout=30&offset=%d", b.token, b.offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if !parsed.OK {
		return nil, fmt.Errorf("telegram: ответ не ok")
	}

	return parsed.Result, nil
}

// sendMessage отправляет текст в настроенный чат
func (b *CommandBot) sendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", b.token)

	payload := map[string]string{
		"chat_id": b.chatID,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram: статус %d", resp.StatusCode)
	}
	return nil
}
