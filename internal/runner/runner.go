package runner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/internal/exchange"
	"github.com/skalibog/bfra/internal/strategy"
	"github.com/skalibog/bfra/pkg/logger"
	"github.com/skalibog/bfra/pkg/models"
)

// Runner выполняет один цикл стратегии: собирает срезы рынка по всем
// символам, прогоняет стратегию и собирает отчет. Между циклами и между
// символами нет разделяемого состояния.
type Runner struct {
	client      exchange.Client
	strategy    strategy.Strategy
	symbols     []string
	depth       int
	interval    string
	candleLimit int
}

// New создает новый раннер
func New(client exchange.Client, strat strategy.Strategy, cfg config.TradingConfig) *Runner {
	return &Runner{
		client:      client,
		strategy:    strat,
		symbols:     cfg.Symbols,
		depth:       cfg.OrderBookDepth,
		interval:    cfg.Interval,
		candleLimit: cfg.CandleLimit,
	}
}

// Report представляет сводку одного цикла. Строки идут в порядке
// символов из конфигурации, а не в порядке завершения горутин.
type Report struct {
	Lines      []string
	Signals    []*models.Signal
	Actionable int
}

// String возвращает текст отчета для канала уведомлений
func (r *Report) String() string {
	return strings.Join(r.Lines, "\n")
}

// результат обработки одного символа за цикл
type symbolResult struct {
	signal  *models.Signal
	evalErr error
}

// RunCycle выполняет один цикл по всем символам.
// Ошибка получения данных исключает символ из цикла, но не прерывает его;
// ошибка оценки (нет комиссий) попадает в отчет как сбой по символу.
func (r *Runner) RunCycle(ctx context.Context) (*Report, error) {
	results := make([]*symbolResult, len(r.symbols))

	g, ctx := errgroup.WithContext(ctx)
	for i, symbol := range r.symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			snapshot, err := r.fetchSnapshot(ctx, symbol)
			if err != nil {
				// Пропускаем символ, цикл продолжается
				logger.Warn("Не удалось получить данные по символу",
					zap.String("symbol", symbol), zap.Error(err))
				return nil
			}

			signal, err := r.strategy.GenerateSignal(*snapshot)
			if err != nil {
				logger.Error("Ошибка оценки символа",
					zap.String("symbol", symbol), zap.Error(err))
				results[i] = &symbolResult{evalErr: err}
				return nil
			}

			logger.Debug("Символ обработан",
				zap.String("symbol", symbol),
				zap.String("action", string(signal.Action)),
				zap.Float64("confidence", signal.Confidence))
			results[i] = &symbolResult{signal: signal}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, res := range results {
		if res == nil {
			continue // символ исключен из-за ошибки получения данных
		}
		if res.evalErr != nil {
			report.Lines = append(report.Lines, fmt.Sprintf("Evaluation failed: %v", res.evalErr))
			continue
		}

		signal := res.signal
		report.Signals = append(report.Signals, signal)
		if signal.Action != models.ActionNone {
			report.Actionable++
			report.Lines = append(report.Lines,
				fmt.Sprintf("Signal: %s %s (Confidence: %g)", signal.Action, signal.Symbol, signal.Confidence))
		} else {
			report.Lines = append(report.Lines, fmt.Sprintf("No signal for %s", signal.Symbol))
		}
	}

	return report, nil
}

// fetchSnapshot собирает полный срез рынка по символу
func (r *Runner) fetchSnapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	fundingRate, err := r.client.FetchFundingRate(ctx, symbol)
	if err != nil {
		return nil, err
	}

	orderBook, err := r.client.FetchOrderBook(ctx, symbol, r.depth)
	if err != nil {
		return nil, err
	}

	fees, err := r.client.FetchFees(ctx, symbol)
	if err != nil {
		return nil, err
	}

	candles, err := r.client.FetchCandles(ctx, symbol, r.interval, r.candleLimit)
	if err != nil {
		return nil, err
	}

	return &models.MarketSnapshot{
		Symbol:      symbol,
		FundingRate: *fundingRate,
		OrderBook:   *orderBook,
		Fees:        fees,
		Candles:     candles,
	}, nil
}
