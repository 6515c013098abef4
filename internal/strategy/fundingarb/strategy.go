package fundingarb

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/pkg/models"
)

// ErrMissingFeeData означает отсутствие комиссий в срезе рынка.
// Подстановка комиссии по умолчанию исказила бы расчет доходности,
// поэтому оценка завершается ошибкой конфигурации.
var ErrMissingFeeData = errors.New("нет данных о комиссиях")

// Strategy реализует стратегию арбитража ставок финансирования:
// собрать выплату финансирования, если она покрывает издержки входа
// и выхода, а до выплаты осталось не слишком долго.
type Strategy struct {
	threshold       float64
	holdTimeHours   float64
	maxHoursToWait  float64
	orderSizeUSD    float64
	defaultSlippage float64
	cycleHours      []int
}

// New создает стратегию фандинг-арбитража из конфигурации
func New(cfg config.StrategyConfig) *Strategy {
	return &Strategy{
		threshold:       cfg.Threshold,
		holdTimeHours:   cfg.HoldTimeHours,
		maxHoursToWait:  cfg.MaxHoursToWait,
		orderSizeUSD:    cfg.OrderSizeUSD,
		defaultSlippage: cfg.DefaultSlippage,
		cycleHours:      cfg.CycleHours,
	}
}

// Name возвращает имя стратегии
func (s *Strategy) Name() string {
	return "funding-arbitrage"
}

// Evaluate оценивает арбитражную возможность по срезу рынка.
// Чистая функция: никакого состояния между вызовами и символами.
func (s *Strategy) Evaluate(snapshot models.MarketSnapshot) (*models.Evaluation, error) {
	if snapshot.Fees == nil {
		return nil, fmt.Errorf("%w для %s", ErrMissingFeeData, snapshot.Symbol)
	}

	fundingRate := snapshot.FundingRate.Rate
	takerFee := snapshot.Fees.Taker

	slippage := estimateSlippage(snapshot.OrderBook.Asks, s.orderSizeUSD, s.defaultSlippage)
	grossReturn := math.Max(fundingRate, 0)
	cost := estimatedCost(takerFee, slippage)
	netReturn := grossReturn - cost
	breakevenHours := s.breakevenHours(cost, fundingRate)
	waitHours := hoursToNextFundingCycle(snapshot.FundingRate.Timestamp, s.cycleHours)

	return &models.Evaluation{
		Symbol:             snapshot.Symbol,
		FundingRate:        fundingRate,
		TakerFee:           takerFee,
		Slippage:           slippage,
		NetReturn:          netReturn,
		BreakevenHours:     breakevenHours,
		BreakevenHuman:     formatDuration(breakevenHours),
		TimeToFundingHours: waitHours,
		IsProfitable: netReturn > 0 &&
			fundingRate > s.threshold &&
			waitHours <= s.maxHoursToWait,
	}, nil
}

// GenerateSignal превращает оценку в торговый сигнал.
// Стратегия выдает только BUY или NONE.
func (s *Strategy) GenerateSignal(snapshot models.MarketSnapshot) (*models.Signal, error) {
	evaluation, err := s.Evaluate(snapshot)
	if err != nil {
		return nil, err
	}

	if evaluation.IsProfitable {
		return &models.Signal{
			Symbol:     evaluation.Symbol,
			Action:     models.ActionBuy,
			Confidence: round6(evaluation.NetReturn),
			Evaluation: evaluation,
			CreatedAt:  time.Now().UTC(),
		}, nil
	}

	return &models.Signal{
		Symbol:    evaluation.Symbol,
		Action:    models.ActionNone,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// breakevenHours вычисляет время удержания позиции, за которое накопленное
// финансирование покроет издержки. При неположительной ставке издержки не
// окупаются никогда.
func (s *Strategy) breakevenHours(cost, fundingRate float64) float64 {
	if fundingRate <= 0 {
		return math.Inf(1)
	}
	fundingPerHour := fundingRate / s.holdTimeHours
	return cost / fundingPerHour
}

// round6 округляет до шести знаков после запятой
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
