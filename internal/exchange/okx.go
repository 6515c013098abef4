package exchange

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skalibog/bfra/pkg/models"
)

// Базовые комиссии OKX для бессрочных свопов
const (
	okxDefaultMakerFee = 0.0002
	okxDefaultTakerFee = 0.0005
)

// OKXClient клиент публичного REST API OKX v5
type OKXClient struct {
	baseURL string
	client  *http.Client
}

// NewOKXClient создает новый клиент OKX
func NewOKXClient() *OKXClient {
	return &OKXClient{
		baseURL: "https://www.okx.com",
		client:  newHTTPClient(),
	}
}

// Name возвращает идентификатор биржи
func (c *OKXClient) Name() string {
	return "okx"
}

// instID конвертирует символ вида BTCUSDT в инструмент OKX BTC-USDT-SWAP
func instID(symbol string) string {
	base := strings.TrimSuffix(symbol, "USDT")
	return base + "-USDT-SWAP"
}

type okxFundingResponse struct {
	Data []struct {
		FundingRate string `json:"fundingRate"`
		FundingTime string `json:"fundingTime"`
	} `json:"data"`
}

// FetchFundingRate получает текущую ставку финансирования
func (c *OKXClient) FetchFundingRate(ctx context.Context, symbol string) (*models.FundingRate, error) {
	params := url.Values{"instId": {instID(symbol)}}

	var resp okxFundingResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/api/v5/public/funding-rate", params, &resp); err != nil {
		return nil, &FetchError{Exchange: "okx", Op: "funding rate", Symbol: symbol, Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &FetchError{Exchange: "okx", Op: "funding rate", Symbol: symbol, Err: errNoData}
	}

	rate, err := strconv.ParseFloat(resp.Data[0].FundingRate, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "okx", Op: "funding rate", Symbol: symbol, Err: err}
	}
	ts, err := strconv.ParseInt(resp.Data[0].FundingTime, 10, 64)
	if err != nil {
		return nil, &FetchError{Exchange: "okx", Op: "funding rate", Symbol: symbol, Err: err}
	}

	return &models.FundingRate{
		Symbol:    symbol,
		Rate:      rate,
		Timestamp: time.UnixMilli(ts).UTC(),
	}, nil
}

type okxBooksResponse struct {
	Data []struct {
		Bids [][]string `json:"bids"`
		Asks [][]string `json:"asks"`
		TS   string     `json:"ts"`
	} `json:"data"`
}

// FetchOrderBook получает стакан заявок
func (c *OKXClient) FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error) {
	params := url.Values{
		"instId": {instID(symbol)},
		"sz":     {strconv.Itoa(depth)},
	}

	var resp okxBooksResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/api/v5/market/books", params, &resp); err != nil {
		return nil, &FetchError{Exchange: "okx", Op: "order book", Symbol: symbol, Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &FetchError{Exchange: "okx", Op: "order book", Symbol: symbol, Err: errNoData}
	}

	book := resp.Data[0]
	orderBook := &models.OrderBook{
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Bids:      make([]models.OrderBookLevel, 0, len(book.Bids)),
		Asks:      make([]models.OrderBookLevel, 0, len(book.Asks)),
	}
	if ts, err := strconv.ParseInt(book.TS, 10, 64); err == nil {
		orderBook.Timestamp = time.UnixMilli(ts).UTC()
	}

	for _, bid := range book.Bids {
		if len(bid) < 2 {
			return nil, &FetchError{Exchange: "okx", Op: "order book", Symbol: symbol, Err: errBadPayload}
		}
		level, err := parseLevel(bid[0], bid[1])
		if err != nil {
			return nil, &FetchError{Exchange: "okx", Op: "order book", Symbol: symbol, Err: err}
		}
		orderBook.Bids = append(orderBook.Bids, level)
	}
	for _, ask := range book.Asks {
		if len(ask) < 2 {
			return nil, &FetchError{Exchange: "okx", Op: "order book", Symbol: symbol, Err: errBadPayload}
		}
		level, err := parseLevel(ask[0], ask[1])
		if err != nil {
			return nil, &FetchError{Exchange: "okx", Op: "order book", Symbol: symbol, Err: err}
		}
		orderBook.Asks = append(orderBook.Asks, level)
	}

	return orderBook, nil
}

// FetchFees возвращает базовые комиссии биржи.
// Персональные комиссии доступны только через подписной эндпоинт.
func (c *OKXClient) FetchFees(ctx context.Context, symbol string) (*models.Fees, error) {
	return &models.Fees{Maker: okxDefaultMakerFee, Taker: okxDefaultTakerFee}, nil
}

type okxCandlesResponse struct {
	Data [][]string `json:"data"`
}

// FetchCandles получает исторические свечи (OKX отдает их от новых к старым)
func (c *OKXClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	params := url.Values{
		"instId": {instID(symbol)},
		"bar":    {okxBar(interval)},
		"limit":  {strconv.Itoa(limit)},
	}

	var resp okxCandlesResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/api/v5/market/candles", params, &resp); err != nil {
		return nil, &FetchError{Exchange: "okx", Op: "candles", Symbol: symbol, Err: err}
	}

	candles := make([]models.Candle, 0, len(resp.Data))
	// Разворачиваем в хронологический порядок
	for i := len(resp.Data) - 1; i >= 0; i-- {
		row := resp.Data[i]
		if len(row) < 6 {
			return nil, &FetchError{Exchange: "okx", Op: "candles", Symbol: symbol, Err: errBadPayload}
		}

		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, &FetchError{Exchange: "okx", Op: "candles", Symbol: symbol, Err: err}
		}
		values := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, &FetchError{Exchange: "okx", Op: "candles", Symbol: symbol, Err: err}
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

// okxBar конвертирует интервал в формат OKX (минуты строчные, часы и дни прописные)
func okxBar(interval string) string {
	switch interval {
	case "1m", "3m", "5m", "15m", "30m":
		return interval
	case "1h":
		return "1H"
	case "4h":
		return "4H"
	case "1d":
		return "1D"
	default:
		return strings.ToUpper(interval)
	}
}
