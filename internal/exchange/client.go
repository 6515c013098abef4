package exchange

import (
	"context"
	"fmt"

	"github.com/skalibog/bfra/internal/config"
	"github.com/skalibog/bfra/pkg/models"
)

// Client интерфейс биржевого клиента.
// Любая ошибка метода трактуется оркестратором как "пропустить символ в этом цикле".
type Client interface {
	Name() string
	FetchFundingRate(ctx context.Context, symbol string) (*models.FundingRate, error)
	FetchOrderBook(ctx context.Context, symbol string, depth int) (*models.OrderBook, error)
	FetchFees(ctx context.Context, symbol string) (*models.Fees, error)
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// FetchError представляет ошибку получения данных с биржи по символу
type FetchError struct {
	Exchange string
	Op       string
	Symbol   string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: ошибка %s для %s: %v", e.Exchange, e.Op, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// New создает биржевой клиент по имени из конфигурации
func New(cfg config.ExchangeConfig) (Client, error) {
	switch cfg.Name {
	case "binance":
		return NewBinanceClient(cfg)
	case "okx":
		return NewOKXClient(), nil
	case "bybit":
		return NewBybitClient(), nil
	default:
		return nil, fmt.Errorf("неизвестная биржа: %s", cfg.Name)
	}
}
