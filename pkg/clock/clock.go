package clock

import (
	"sync"
	"time"
)

// Clock abstrai a leitura do horário atual para permitir testes determinísticos
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Real retorna um Clock que usa time.Now
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

// FakeClock é um Clock controlado manualmente
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// Fake cria um FakeClock parado em initial
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// Now retorna o horário atual do relógio falso
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance avança o relógio em d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// Set posiciona o relógio em t
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
