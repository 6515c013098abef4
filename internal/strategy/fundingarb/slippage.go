package fundingarb

import (
	"math"

	"github.com/skalibog/bfra/pkg/models"
)

// estimateSlippage оценивает проскальзывание рыночной покупки заданного
// размера в долларах по аскам стакана. Проскальзывание — отклонение
// средневзвешенной цены исполнения от лучшего аска.
// Пустой или слишком мелкий стакан — не ошибка: возвращается defaultSlippage.
func estimateSlippage(asks []models.OrderBookLevel, orderSizeUSD, defaultSlippage float64) float64 {
	if len(asks) == 0 {
		return defaultSlippage
	}

	bestPrice := asks[0].Price
	remaining := orderSizeUSD
	var totalCost, filledQty float64

	for _, level := range asks {
		levelValue := level.Price * level.Quantity
		if levelValue >= remaining {
			qty := remaining / level.Price
			totalCost += qty * level.Price
			filledQty += qty
			remaining = 0
			break
		}
		totalCost += levelValue
		filledQty += level.Quantity
		remaining -= levelValue
	}

	// Глубины не хватило на весь объем — частичную оценку не делаем
	if remaining > 0 {
		return defaultSlippage
	}

	if filledQty == 0 || bestPrice <= 0 {
		return defaultSlippage
	}

	avgPrice := totalCost / filledQty
	slippage := (avgPrice - bestPrice) / bestPrice
	return math.Max(0, slippage)
}

// estimatedCost оценивает издержки полного круга сделки: вход и выход,
// каждая нога платит комиссию тейкера и проскальзывание.
func estimatedCost(takerFee, slippage float64) float64 {
	return 2 * math.Max(takerFee+slippage, 0)
}
