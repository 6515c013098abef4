package strategy

import (
	"github.com/skalibog/bfra/pkg/models"
)

// Strategy интерфейс торговой стратегии.
// Evaluate возвращает структурированную оценку возможности без принятия
// решения, GenerateSignal превращает оценку в торговый сигнал.
type Strategy interface {
	Name() string
	Evaluate(snapshot models.MarketSnapshot) (*models.Evaluation, error)
	GenerateSignal(snapshot models.MarketSnapshot) (*models.Signal, error)
}
