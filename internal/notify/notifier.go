package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/skalibog/bfra/pkg/logger"
)

// Sender интерфейс канала доставки уведомлений
type Sender interface {
	Send(ctx context.Context, text string) error
	Name() string
}

// Notifier рассылает отчет цикла по всем настроенным каналам.
// Сбой одного канала не мешает доставке в остальные.
type Notifier struct {
	senders []Sender
}

// NewNotifier создает нотификатор с заданными каналами
func NewNotifier(senders ...Sender) *Notifier {
	return &Notifier{senders: senders}
}

// Deliver доставляет текст отчета во все каналы
func (n *Notifier) Deliver(ctx context.Context, text string) error {
	if text == "" || len(n.senders) == 0 {
		return nil
	}

	var failed []string
	for _, s := range n.senders {
		if err := s.Send(ctx, text); err != nil {
			logger.Error("Сбой канала уведомлений",
				zap.String("sender", s.Name()), zap.Error(err))
			failed = append(failed, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		logger.Debug("Уведомление доставлено", zap.String("sender", s.Name()))
	}

	if len(failed) > 0 {
		return fmt.Errorf("сбой каналов уведомлений: %s", strings.Join(failed, "; "))
	}
	return nil
}
