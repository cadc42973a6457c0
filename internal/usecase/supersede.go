package usecase

import (
	"context"
	"sync"
)

// RequestTracker следит за последним запросом для каждого ключа (сессия + операция).
// Новый Begin отменяет контекст предыдущего запроса с тем же ключом, а его
// результат перестаёт считаться актуальным.
type RequestTracker struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]*trackedRequest
}

type trackedRequest struct {
	generation uint64
	cancel     context.CancelFunc
}

// Ticket - отметка конкретного запроса
type Ticket struct {
	tracker    *RequestTracker
	key        string
	generation uint64
}

// NewRequestTracker - создание нового RequestTracker
func NewRequestTracker() *RequestTracker {
	return &RequestTracker{entries: make(map[string]*trackedRequest)}
}

// Begin регистрирует новый запрос и возвращает контекст, который будет
// отменён, если по тому же ключу начнётся более новый запрос.
func (t *RequestTracker) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	reqCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.entries[key]; ok {
		prev.cancel()
	}
	// счётчик общий для всех ключей, номер не повторяется после Done
	t.seq++
	generation := t.seq
	t.entries[key] = &trackedRequest{generation: generation, cancel: cancel}

	return reqCtx, Ticket{tracker: t, key: key, generation: generation}
}

// Current сообщает, можно ли ещё применять результат этого запроса
func (tk Ticket) Current() bool {
	if tk.tracker == nil {
		return true
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	entry, ok := tk.tracker.entries[tk.key]
	return ok && entry.generation == tk.generation
}

// Done освобождает ресурсы запроса. Запись удаляется только если она всё ещё наша.
func (tk Ticket) Done() {
	if tk.tracker == nil {
		return
	}
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	entry, ok := tk.tracker.entries[tk.key]
	if !ok || entry.generation != tk.generation {
		return
	}
	entry.cancel()
	delete(tk.tracker.entries, tk.key)
}

// Generation returns the ticket's sequence number.
func (tk Ticket) Generation() uint64 {
	return tk.generation
}
