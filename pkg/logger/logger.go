package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Глобальный экземпляр логгера
var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Init инициализирует глобальный логгер с заданным уровнем ("debug", "info", ...)
func Init(level string) {
	once.Do(func() {
		globalLogger = newLogger(level)
	})
}

// GetLogger возвращает глобальный экземпляр логгера
func GetLogger() *zap.Logger {
	if globalLogger == nil {
		Init("info")
	}
	return globalLogger
}

// Вспомогательные функции для удобства использования
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// newLogger создает новый экземпляр логгера
func newLogger(level string) *zap.Logger {
	// Конфигурация энкодера
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("02.01.2006 - 15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	jsonEncoderConfig := zap.NewProductionEncoderConfig()
	jsonFileEncoder := zapcore.NewJSONEncoder(jsonEncoderConfig)

	jsonFile, err := os.OpenFile("bfra.json.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}

	consoleWriter := zapcore.AddSync(os.Stdout)
	jsonFileWriter := zapcore.AddSync(jsonFile)

	// Уровень логирования
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	// Tee: консоль + JSON файл
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, consoleWriter, lvl),
		zapcore.NewCore(jsonFileEncoder, jsonFileWriter, lvl),
	)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}
