package bot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/internal/notify"
	"github.com/skalibog/bfra/internal/runner"
	"github.com/skalibog/bfra/pkg/logger"
)

// Controller управляет циклом опроса: раз в интервал запускает раннер
// и передает отчет в каналы уведомлений. Ошибки цикла учитываются,
// но никогда не останавливают процесс.
type Controller struct {
	runner       *runner.Runner
	notifier     *notify.Notifier
	state        *State
	pollInterval time.Duration
	cycleTimeout time.Duration
}

// NewController создает контроллер цикла опроса
func NewController(r *runner.Runner, n *notify.Notifier, state *State, cfg config.BotConfig) *Controller {
	return &Controller{
		runner:       r,
		notifier:     n,
		state:        state,
		pollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
		cycleTimeout: time.Duration(cfg.CycleTimeoutSeconds) * time.Second,
	}
}

// Run запускает цикл опроса и блокируется до отмены контекста
func (c *Controller) Run(ctx context.Context) {
	c.state.SetRunning(true)
	defer c.state.SetRunning(false)

	logger.Info("Цикл опроса запущен", zap.Duration("interval", c.pollInterval))

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if c.state.IsPaused() {
				logger.Debug("Цикл пропущен: бот на паузе")
				continue
			}
			c.RunOnce(ctx)
		case <-ctx.Done():
			logger.Info("Цикл опроса остановлен")
			return
		}
	}
}

// RunOnce выполняет один цикл немедленно (тик таймера или команда /run)
func (c *Controller) RunOnce(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, c.cycleTimeout)
	defer cancel()

	started := time.Now()
	report, err := c.runner.RunCycle(cycleCtx)
	if err != nil {
		c.state.RecordError()
		logger.Error("Ошибка выполнения цикла", zap.Error(err))
		return
	}

	c.state.RecordCycle()
	logger.Info("Цикл завершен",
		zap.Int("symbols", len(report.Signals)),
		zap.Int("actionable", report.Actionable),
		zap.Duration("elapsed", time.Since(started)))

	if err := c.notifier.Deliver(cycleCtx, report.String()); err != nil {
		c.state.RecordError()
		logger.Error("Ошибка доставки отчета", zap.Error(err))
	}
}

// Pause приостанавливает выполнение циклов
func (c *Controller) Pause() {
	c.state.SetPaused(true)
	logger.Info("Бот поставлен на паузу")
}

// Resume возобновляет выполнение циклов
func (c *Controller) Resume() {
	c.state.SetPaused(false)
	logger.Info("Бот снят с паузы")
}

// Status возвращает срез состояния
func (c *Controller) Status() StateSnapshot {
	return c.state.Snapshot()
}
