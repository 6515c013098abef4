package movingavg

import (
	"testing"
	"time"

	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/pkg/models"
)

func testConfig() config.StrategyConfig {
	return config.StrategyConfig{
		MAShortPeriod: 3,
		MALongPeriod:  5,
	}
}

func candlesFromCloses(closes []float64) []models.Candle {
	candles := make([]models.Candle, len(closes))
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candles[i] = models.Candle{
			Symbol:   "BTCUSDT",
			Interval: "1h",
			OpenTime: base.Add(time.Duration(i) * time.Hour),
			Close:    c,
		}
	}
	return candles
}

func TestGenerateSignalUptrend(t *testing.T) {
	s := New(testConfig())

	snap := models.MarketSnapshot{
		Symbol:  "BTCUSDT",
		Candles: candlesFromCloses([]float64{100, 101, 103, 106, 110, 115, 121}),
	}

	signal, err := s.GenerateSignal(snap)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if signal.Action != models.ActionBuy {
		t.Fatalf("восходящий тренд: ожидался BUY, получено %s", signal.Action)
	}
	if signal.Evaluation == nil {
		t.Fatal("сигнал должен нести оценку")
	}
	if signal.Evaluation.Components["short_ma"] <= signal.Evaluation.Components["long_ma"] {
		t.Fatal("короткая средняя должна быть выше длинной")
	}
}

func TestGenerateSignalDowntrend(t *testing.T) {
	s := New(testConfig())

	snap := models.MarketSnapshot{
		Symbol:  "BTCUSDT",
		Candles: candlesFromCloses([]float64{121, 115, 110, 106, 103, 101, 100}),
	}

	signal, err := s.GenerateSignal(snap)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if signal.Action != models.ActionSell {
		t.Fatalf("нисходящий тренд: ожидался SELL, получено %s", signal.Action)
	}
}

func TestGenerateSignalNotEnoughCandles(t *testing.T) {
	s := New(testConfig())

	snap := models.MarketSnapshot{
		Symbol:  "BTCUSDT",
		Candles: candlesFromCloses([]float64{100, 101, 102}),
	}

	signal, err := s.GenerateSignal(snap)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if signal.Action != models.ActionNone {
		t.Fatalf("нехватка свечей: ожидался NONE, получено %s", signal.Action)
	}
}

func TestEvaluateFlatMarket(t *testing.T) {
	s := New(testConfig())

	snap := models.MarketSnapshot{
		Symbol:  "BTCUSDT",
		Candles: candlesFromCloses([]float64{100, 100, 100, 100, 100, 100}),
	}

	eval, err := s.Evaluate(snap)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if eval.IsProfitable {
		t.Fatal("плоский рынок не дает преимущества")
	}
	if eval.Components["short_ma"] != eval.Components["long_ma"] {
		t.Fatal("на плоском рынке средние совпадают")
	}
}
