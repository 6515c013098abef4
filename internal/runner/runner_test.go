package runner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/internal/exchange"
	"github.com/skalibog/bfra/internal/strategy/fundingarb"
	"github.com/skalibog/bfra/pkg/models"
)

// fakeClient биржевой клиент с заранее заданными данными по символам
type fakeClient struct {
	rates  map[string]float64
	fail   map[string]bool
	noFees map[string]bool
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) FetchFundingRate(ctx context.Context, symbol string) (*models.FundingRate, error) {
	if f.fail[symbol] {
		return nil, &exchange.FetchError{Exchange: "fake", Op: "funding rate", Symbol: symbol, Err: errors.New("таймаут")}
	}
	return &models.FundingRate{
		Symbol:    symbol,
		Rate:      f.rates[symbol],
		Timestamp: time.Date(2025, 6, 1, 0, 1, 0, 0, time.UTC),
	}, nil
}

func (f *fakeClient) FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error) {
	return &models.OrderBook{Symbol: symbol}, nil
}

func (f *fakeClient) FetchFees(ctx context.Context, symbol string) (*models.Fees, error) {
	if f.noFees[symbol] {
		return nil, nil
	}
	return &models.Fees{Maker: 0.0002, Taker: 0.0003}, nil
}

func (f *fakeClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	return nil, nil
}

func testRunner(client exchange.Client, symbols []string) *Runner {
	strat := fundingarb.New(config.StrategyConfig{
		Threshold:       0.0005,
		HoldTimeHours:   8,
		MaxHoursToWait:  8,
		OrderSizeUSD:    1000,
		DefaultSlippage: 0.0005,
		CycleHours:      []int{0, 8, 16},
	})
	return New(client, strat, config.TradingConfig{
		Symbols:        symbols,
		Interval:       "1h",
		OrderBookDepth: 20,
		CandleLimit:    50,
	})
}

func TestRunCycleReportsAllSymbolsInOrder(t *testing.T) {
	client := &fakeClient{
		rates: map[string]float64{
			"AAAUSDT": 0.002,  // прибыльная возможность
			"ZZZUSDT": 0.0001, // ниже порога
		},
	}
	r := testRunner(client, []string{"AAAUSDT", "ZZZUSDT"})

	report, err := r.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if len(report.Signals) != 2 {
		t.Fatalf("ожидалось 2 сигнала, получено %d", len(report.Signals))
	}
	if report.Actionable != 1 {
		t.Fatalf("ожидался 1 активный сигнал, получено %d", report.Actionable)
	}
	// Порядок строк — порядок символов из конфигурации
	if len(report.Lines) != 2 {
		t.Fatalf("ожидалось 2 строки отчета, получено %d", len(report.Lines))
	}
	if !strings.HasPrefix(report.Lines[0], "Signal: BUY AAAUSDT") {
		t.Fatalf("неожиданная первая строка: %q", report.Lines[0])
	}
	if report.Lines[1] != "No signal for ZZZUSDT" {
		t.Fatalf("неожиданная вторая строка: %q", report.Lines[1])
	}
}

func TestRunCycleSkipsFailedFetch(t *testing.T) {
	client := &fakeClient{
		rates: map[string]float64{
			"AAAUSDT": 0.002,
			"ZZZUSDT": 0.0001,
		},
		fail: map[string]bool{"BADUSDT": true},
	}
	r := testRunner(client, []string{"AAAUSDT", "BADUSDT", "ZZZUSDT"})

	report, err := r.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("ошибка получения данных не должна прерывать цикл: %v", err)
	}

	// Сбойный символ исключен, остальные обработаны
	if len(report.Signals) != 2 {
		t.Fatalf("ожидалось 2 сигнала, получено %d", len(report.Signals))
	}
	for _, line := range report.Lines {
		if strings.Contains(line, "BADUSDT") {
			t.Fatalf("исключенный символ не должен попадать в отчет: %q", line)
		}
	}
}

func TestRunCycleReportsEvaluationFailure(t *testing.T) {
	client := &fakeClient{
		rates:  map[string]float64{"AAAUSDT": 0.002, "NOFEEUSDT": 0.002},
		noFees: map[string]bool{"NOFEEUSDT": true},
	}
	r := testRunner(client, []string{"AAAUSDT", "NOFEEUSDT"})

	report, err := r.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// Отсутствие комиссий — сбой оценки, он виден в отчете
	if len(report.Signals) != 1 {
		t.Fatalf("ожидался 1 сигнал, получено %d", len(report.Signals))
	}
	if len(report.Lines) != 2 {
		t.Fatalf("ожидалось 2 строки отчета, получено %d", len(report.Lines))
	}
	if !strings.HasPrefix(report.Lines[1], "Evaluation failed") || !strings.Contains(report.Lines[1], "NOFEEUSDT") {
		t.Fatalf("ожидалась строка о сбое оценки NOFEEUSDT, получено %q", report.Lines[1])
	}
}

func TestReportString(t *testing.T) {
	report := &Report{Lines: []string{"a", "b"}}
	if got := report.String(); got != "a\nb" {
		t.Fatalf("неожиданный текст отчета: %q", got)
	}
}
