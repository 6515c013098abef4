package notify

import (
	"context"
	"fmt"
	"os"
	"time"
)

// FileSender дописывает отчеты в файл с отметкой времени
type FileSender struct {
	path string
}

// NewFileSender создает файловый канал доставки
func NewFileSender(path string) *FileSender {
	return &FileSender{path: path}
}

// Send дописывает отчет в конец файла
func (f *FileSender) Send(ctx context.Context, text string) error {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("file: ошибка открытия %s: %w", f.path, err)
	}
	defer file.Close()

	entry := fmt.Sprintf("[%s]\n%s\n\n", time.Now().UTC().Format(time.RFC3339), text)
	if _, err := file.WriteString(entry); err != nil {
		return fmt.Errorf("file: ошибка записи: %w", err)
	}

	return nil
}

// Name возвращает идентификатор канала
func (f *FileSender) Name() string {
	return "file"
}
