package voice

import (
	"context"
	"sync"
)

// MockSpeaker permite tests sin proveedor de voz real.
type MockSpeaker struct {
	mu        sync.Mutex
	Err       error
	Announced []string
}

func (m *MockSpeaker) Announce(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Announced = append(m.Announced, text)
	return nil
}
