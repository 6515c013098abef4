package notify

import (
	"context"
	"errors"
	"testing"
)

// recordSender запоминает доставленные тексты
type recordSender struct {
	name string
	sent []string
	fail bool
}

func (r *recordSender) Send(ctx context.Context, text string) error {
	if r.fail {
		return errors.New("канал недоступен")
	}
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordSender) Name() string { return r.name }

func TestDeliverFanOut(t *testing.T) {
	a := &recordSender{name: "a"}
	b := &recordSender{name: "b"}
	n := NewNotifier(a, b)

	if err := n.Deliver(context.Background(), "отчет"); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Fatalf("отчет должен дойти до всех каналов: a=%d b=%d", len(a.sent), len(b.sent))
	}
}

func TestDeliverFailedSenderDoesNotBlockOthers(t *testing.T) {
	bad := &recordSender{name: "bad", fail: true}
	good := &recordSender{name: "good"}
	n := NewNotifier(bad, good)

	err := n.Deliver(context.Background(), "отчет")
	if err == nil {
		t.Fatal("ожидалась ошибка сбойного канала")
	}
	if len(good.sent) != 1 {
		t.Fatal("сбой одного канала не должен блокировать остальные")
	}
}

func TestDeliverEmptyReport(t *testing.T) {
	a := &recordSender{name: "a"}
	n := NewNotifier(a)

	if err := n.Deliver(context.Background(), ""); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(a.sent) != 0 {
		t.Fatal("пустой отчет не доставляется")
	}
}
