package exchange

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/pkg/models"
)

// Комиссии USDT-M фьючерсов по умолчанию, используются без API-ключа
const (
	binanceDefaultMakerFee = 0.0002
	binanceDefaultTakerFee = 0.0004
)

// BinanceClient клиент для взаимодействия с Binance USDT-M фьючерсами
type BinanceClient struct {
	futures *futures.Client
	signed  bool
}

// NewBinanceClient создает новый клиент Binance
func NewBinanceClient(cfg config.ExchangeConfig) (*BinanceClient, error) {
	if cfg.Testnet {
		futures.UseTestnet = true
	}
	futuresClient := futures.NewClient(cfg.APIKey, cfg.APISecret)

	return &BinanceClient{
		futures: futuresClient,
		signed:  cfg.APIKey != "" && cfg.APISecret != "",
	}, nil
}

// Name возвращает идентификатор биржи
func (c *BinanceClient) Name() string {
	return "binance"
}

// FetchFundingRate получает последнюю ставку финансирования
func (c *BinanceClient) FetchFundingRate(ctx context.Context, symbol string) (*models.FundingRate, error) {
	rates, err := c.futures.NewFundingRateService().
		Symbol(symbol).
		Limit(1).
		Do(ctx)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "funding rate", Symbol: symbol, Err: err}
	}

	if len(rates) == 0 {
		return nil, &FetchError{Exchange: "binance", Op: "funding rate", Symbol: symbol, Err: errNoData}
	}

	rate, err := strconv.ParseFloat(rates[0].FundingRate, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "funding rate", Symbol: symbol, Err: err}
	}

	return &models.FundingRate{
		Symbol:    symbol,
		Rate:      rate,
		Timestamp: time.UnixMilli(rates[0].FundingTime).UTC(),
	}, nil
}

// FetchOrderBook получает стакан заявок
func (c *BinanceClient) FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error) {
	ob, err := c.futures.NewDepthService().
		Symbol(symbol).
		Limit(depth).
		Do(ctx)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "order book", Symbol: symbol, Err: err}
	}

	orderBook := &models.OrderBook{
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Bids:      make([]models.OrderBookLevel, 0, len(ob.Bids)),
		Asks:      make([]models.OrderBookLevel, 0, len(ob.Asks)),
	}

	for _, bid := range ob.Bids {
		level, err := parseLevel(bid.Price, bid.Quantity)
		if err != nil {
			return nil, &FetchError{Exchange: "binance", Op: "order book", Symbol: symbol, Err: err}
		}
		orderBook.Bids = append(orderBook.Bids, level)
	}

	for _, ask := range ob.Asks {
		level, err := parseLevel(ask.Price, ask.Quantity)
		if err != nil {
			return nil, &FetchError{Exchange: "binance", Op: "order book", Symbol: symbol, Err: err}
		}
		orderBook.Asks = append(orderBook.Asks, level)
	}

	return orderBook, nil
}

// FetchFees получает комиссии для символа.
// Эндпоинт комиссий подписной, без ключа возвращаются базовые ставки биржи.
func (c *BinanceClient) FetchFees(ctx context.Context, symbol string) (*models.Fees, error) {
	if !c.signed {
		return &models.Fees{Maker: binanceDefaultMakerFee, Taker: binanceDefaultTakerFee}, nil
	}

	rate, err := c.futures.NewCommissionRateService().
		Symbol(symbol).
		Do(ctx)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "fees", Symbol: symbol, Err: err}
	}

	maker, err := strconv.ParseFloat(rate.MakerCommissionRate, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "fees", Symbol: symbol, Err: err}
	}
	taker, err := strconv.ParseFloat(rate.TakerCommissionRate, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "fees", Symbol: symbol, Err: err}
	}

	return &models.Fees{Maker: maker, Taker: taker}, nil
}

// FetchCandles получает исторические свечи
func (c *BinanceClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	klines, err := c.futures.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, &FetchError{Exchange: "binance", Op: "candles", Symbol: symbol, Err: err}
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, k := range klines {
		open, err1 := strconv.ParseFloat(k.Open, 64)
		high, err2 := strconv.ParseFloat(k.High, 64)
		low, err3 := strconv.ParseFloat(k.Low, 64)
		closePrice, err4 := strconv.ParseFloat(k.Close, 64)
		volume, err5 := strconv.ParseFloat(k.Volume, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			return nil, &FetchError{Exchange: "binance", Op: "candles", Symbol: symbol, Err: errBadPayload}
		}

		candles = append(candles, models.Candle{
			Symbol:    symbol,
			Interval:  interval,
			OpenTime:  time.UnixMilli(k.OpenTime).UTC(),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
			CloseTime: time.UnixMilli(k.CloseTime).UTC(),
		})
	}

	return candles, nil
}

// parseLevel конвертирует строковый уровень стакана в числовой
func parseLevel(priceStr, qtyStr string) (models.OrderBookLevel, error) {
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return models.OrderBookLevel{}, err
	}
	qty, err := strconv.ParseFloat(qtyStr, 64)
	if err != nil {
		return models.OrderBookLevel{}, err
	}
	return models.OrderBookLevel{Price: price, Quantity: qty}, nil
}
