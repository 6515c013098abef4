package movingavg

import (
	"time"

	"github.com/markcheno/go-talib"
	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/pkg/models"
)

// Strategy реализует стратегию пересечения скользящих средних.
// Вторая стратегия за общим интерфейсом: в отличие от фандинг-арбитража
// выдает и SELL, и HOLD.
type Strategy struct {
	shortPeriod int
	longPeriod  int
}

// New создает стратегию скользящих средних из конфигурации
func New(cfg config.StrategyConfig) *Strategy {
	return &Strategy{
		shortPeriod: cfg.MAShortPeriod,
		longPeriod:  cfg.MALongPeriod,
	}
}

// Name возвращает имя стратегии
func (s *Strategy) Name() string {
	return "moving-average"
}

// Evaluate рассчитывает короткую и длинную средние по ценам закрытия
func (s *Strategy) Evaluate(snapshot models.MarketSnapshot) (*models.Evaluation, error) {
	shortMA, longMA, ok := s.averages(snapshot.Candles)

	evaluation := &models.Evaluation{
		Symbol:      snapshot.Symbol,
		FundingRate: snapshot.FundingRate.Rate,
		Components:  map[string]float64{},
	}
	if !ok {
		return evaluation, nil
	}

	evaluation.Components["short_ma"] = shortMA
	evaluation.Components["long_ma"] = longMA
	evaluation.IsProfitable = shortMA > longMA
	return evaluation, nil
}

// GenerateSignal выдает сигнал по пересечению средних.
// Недостаток свечей — не ошибка, просто нет сигнала.
func (s *Strategy) GenerateSignal(snapshot models.MarketSnapshot) (*models.Signal, error) {
	shortMA, longMA, ok := s.averages(snapshot.Candles)
	if !ok {
		return &models.Signal{
			Symbol:    snapshot.Symbol,
			Action:    models.ActionNone,
			CreatedAt: time.Now().UTC(),
		}, nil
	}

	action := models.ActionHold
	confidence := 0.5
	switch {
	case shortMA > longMA:
		action = models.ActionBuy
		confidence = 0.9
	case shortMA < longMA:
		action = models.ActionSell
		confidence = 0.9
	}

	evaluation, err := s.Evaluate(snapshot)
	if err != nil {
		return nil, err
	}

	return &models.Signal{
		Symbol:     snapshot.Symbol,
		Action:     action,
		Confidence: confidence,
		Evaluation: evaluation,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// averages возвращает последние значения короткой и длинной SMA.
// ok == false, если свечей меньше длинного периода.
func (s *Strategy) averages(candles []models.Candle) (float64, float64, bool) {
	if len(candles) < s.longPeriod {
		return 0, 0, false
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	shortMA := talib.Sma(closes, s.shortPeriod)
	longMA := talib.Sma(closes, s.longPeriod)

	return shortMA[len(shortMA)-1], longMA[len(longMA)-1], true
}
