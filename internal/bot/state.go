package bot

import (
	"sync"
	"time"
)

// State хранит состояние цикла опроса: флаги работы и счетчики.
// Потокобезопасен: читается командным ботом, пишется контроллером.
type State struct {
	mu         sync.Mutex
	running    bool
	paused     bool
	cycleCount int
	errorCount int
	lastRun    time.Time
}

// StateSnapshot представляет срез состояния для команды /status
type StateSnapshot struct {
	Running    bool
	Paused     bool
	CycleCount int
	ErrorCount int
	LastRun    time.Time
}

// NewState создает новое состояние
func NewState() *State {
	return &State{}
}

// SetRunning выставляет флаг работы
func (s *State) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

// SetPaused выставляет флаг паузы
func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// IsPaused возвращает флаг паузы
func (s *State) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// RecordCycle фиксирует завершение цикла
func (s *State) RecordCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycleCount++
	s.lastRun = time.Now().UTC()
}

// RecordError фиксирует ошибку цикла
func (s *State) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
}

// Snapshot возвращает срез состояния
func (s *State) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateSnapshot{
		Running:    s.running,
		Paused:     s.paused,
		CycleCount: s.cycleCount,
		ErrorCount: s.errorCount,
		LastRun:    s.lastRun,
	}
}
