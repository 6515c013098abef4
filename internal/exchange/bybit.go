package exchange

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skalibog/bfra/pkg/models"
)

// Базовые комиссии Bybit для бессрочных контрактов
const (
	bybitDefaultMakerFee = 0.0001
	bybitDefaultTakerFee = 0.0006
)

// BybitClient клиент публичного REST API Bybit v5
type BybitClient struct {
	baseURL string
	client  *http.Client
}

// NewBybitClient создает новый клиент Bybit
func NewBybitClient() *BybitClient {
	return &BybitClient{
		baseURL: "https://api.bybit.com",
		client:  newHTTPClient(),
	}
}

// Name возвращает идентификатор биржи
func (c *BybitClient) Name() string {
	return "bybit"
}

type bybitFundingResponse struct {
	Result struct {
		List []struct {
			FundingRate          string `json:"fundingRate"`
			FundingRateTimestamp string `json:"fundingRateTimestamp"`
		} `json:"list"`
	} `json:"result"`
}

// FetchFundingRate получает последнюю ставку финансирования
func (c *BybitClient) FetchFundingRate(ctx context.Context, symbol string) (*models.FundingRate, error) {
	params := url.Values{
		"category": {"linear"},
		"symbol":   {symbol},
		"limit":    {"1"},
	}

	var resp bybitFundingResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/v5/market/funding/history", params, &resp); err != nil {
		return nil, &FetchError{Exchange: "bybit", Op: "funding rate", Symbol: symbol, Err: err}
	}
	if len(resp.Result.List) == 0 {
		return nil, &FetchError{Exchange: "bybit", Op: "funding rate", Symbol: symbol, Err: errNoData}
	}

	entry := resp.Result.List[0]
	rate, err := strconv.ParseFloat(entry.FundingRate, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "bybit", Op: "funding rate", Symbol: symbol, Err: err}
	}
	ts, err := strconv.ParseInt(entry.FundingRateTimestamp, 10, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "bybit", Op: "funding rate", Symbol: symbol, Err: err}
	}

	return &models.FundingRate{
		Symbol:    symbol,
		Rate:      rate,
		Timestamp: time.UnixMilli(ts).UTC(),
	}, nil
}

type bybitOrderBookResponse struct {
	Result struct {
		Bids [][]string `json:"b"`
		Asks [][]string `json:"a"`
		TS   int64      `json:"ts"`
	} `json:"result"`
}

// FetchOrderBook получает стакан заявок
func (c *BybitClient) FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error) {
	params := url.Values{
		"category": {"linear"},
		"symbol":   {symbol},
		"limit":    {strconv.Itoa(depth)},
	}

	var resp bybitOrderBookResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/v5/market/orderbook", params, &resp); err != nil {
		return nil, &FetchError{Exchange: "bybit", Op: "order book", Symbol: symbol, Err: err}
	}

	orderBook := &models.OrderBook{
		Symbol:    symbol,
		Timestamp: time.UnixMilli(resp.Result.TS).UTC(),
		Bids:      make([]models.OrderBookLevel, 0, len(resp.Result.Bids)),
		Asks:      make([]models.OrderBookLevel, 0, len(resp.Result.Asks)),
	}

	for _, bid := range resp.Result.Bids {
		if len(bid) < 2 {
			return nil, &FetchError{Exchange: "bybit", Op: "order book", Symbol: symbol, Err: errBadPayload}
		}
		level, err := parseLevel(bid[0], bid[1])
		if err != nil {
			return nil, &FetchError{Exchange: "bybit", Op: "order book", Symbol: symbol, Err: err}
		}
		orderBook.Bids = append(orderBook.Bids, level)
	}
	for _, ask := range resp.Result.Asks {
		if len(ask) < 2 {
			return nil, &FetchError{Exchange: "bybit", Op: "order book", Symbol: symbol, Err: errBadPayload}
		}
		level, err := parseLevel(ask[0], ask[1])
		if err != nil {
			return nil, &FetchError{Exchange: "bybit", Op: "order book", Symbol: symbol, Err: err}
		}
		orderBook.Asks = append(orderBook.Asks, level)
	}

	return orderBook, nil
}

// FetchFees возвращает базовые комиссии биржи
func (c *BybitClient) FetchFees(ctx context.Context, symbol string) (*models.Fees, error) {
	return &models.Fees{Maker: bybitDefaultMakerFee, Taker: bybitDefaultTakerFee}, nil
}

type bybitKlineResponse struct {
	Result struct {
		List [][]string `json:"list"`
	} `json:"result"`
}

// FetchCandles получает исторические свечи (Bybit отдает их от новых к старым)
func (c *BybitClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	params := url.Values{
		"category": {"linear"},
		"symbol":   {symbol},
		"interval": {bybitInterval(interval)},
		"limit":    {strconv.Itoa(limit)},
	}

	var resp bybitKlineResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/v5/market/kline", params, &resp); err != nil {
		return nil, &FetchError{Exchange: "bybit", Op: "candles", Symbol: symbol, Err: err}
	}

	candles := make([]models.Candle, 0, len(resp.Result.List))
	// Разворачиваем в хронологический порядок
	for i := len(resp.Result.List) - 1; i >= 0; i-- {
		row := resp.Result.List[i]
		if len(row) < 6 {
			return nil, &FetchError{Exchange: "bybit", Op: "candles", Symbol: symbol, Err: errBadPayload}
		}

		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, &FetchError{Exchange: "bybit", Op: "candles", Symbol: symbol, Err: err}
		}
		values := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, &FetchError{Exchange: "bybit", Op: "candles", Symbol: symbol, Err: err}
			}
			values[j-1] = v
		}

		candles = append(candles, models.Candle{
			Symbol:   symbol,
			Interval: interval,
			OpenTime: time.UnixMilli(ts).UTC(),
			Open:     values[0],
			High:     values[1],
			Low:      values[2],
			Close:    values[3],
			Volume:   values[4],
		})
	}

	return candles, nil
}

// bybitInterval конвертирует интервал в формат Bybit (минуты числом, день буквой)
func bybitInterval(interval string) string {
	switch interval {
	case "1m":
		return "1"
	case "5m":
		return "5"
	case "15m":
		return "15"
	case "30m":
		return "30"
	case "1h":
		return "60"
	case "4h":
		return "240"
	case "1d":
		return "D"
	default:
		return interval
	}
}
