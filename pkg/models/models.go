package models

import (
	"time"
)

// FundingRate представляет ставку финансирования
type FundingRate struct {
	Symbol    string
	Rate      float64
	Timestamp time.Time
}

// OrderBookLevel представляет уровень стакана
type OrderBookLevel struct {
	Price    float64
	Quantity float64
}

// OrderBook представляет стакан заявок.
// Биды отсортированы по убыванию цены, аски по возрастанию.
type OrderBook struct {
	Symbol    string
	Timestamp time.Time
	Bids      []OrderBookLevel
	Asks      []OrderBookLevel
}

// Fees представляет комиссии биржи для символа
type Fees struct {
	Maker float64
	Taker float64
}

// Candle представляет свечу
type Candle struct {
	Symbol    string
	Interval  string
	OpenTime  time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime time.Time
}

// MarketSnapshot представляет срез рынка по символу за один цикл.
// Fees == nil означает, что комиссии неизвестны — это ошибка
// конфигурации, а не повод подставить значение по умолчанию.
type MarketSnapshot struct {
	Symbol      string
	FundingRate FundingRate
	OrderBook   OrderBook
	Fees        *Fees
	Candles     []Candle
}

// Evaluation представляет оценку арбитражной возможности.
// BreakevenHours может быть +Inf, если ставка не покрывает издержки.
type Evaluation struct {
	Symbol             string
	FundingRate        float64
	TakerFee           float64
	Slippage           float64
	NetReturn          float64
	BreakevenHours     float64
	BreakevenHuman     string
	TimeToFundingHours float64
	IsProfitable       bool
	Components         map[string]float64
}

// SignalAction тип действия торгового сигнала
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionHold SignalAction = "HOLD"
	ActionNone SignalAction = "NONE"
)

// Signal представляет торговый сигнал.
// Confidence — величина чистой доходности для ранжирования возможностей,
// не вероятность. Evaluation == nil для сигналов NONE.
type Signal struct {
	Symbol     string
	Action     SignalAction
	Confidence float64
	Evaluation *Evaluation
	CreatedAt  time.Time
}
