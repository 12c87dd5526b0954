package service

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type Manager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        *sync.WaitGroup
	mu        sync.Mutex
	teardowns []func()
}

var manager *Manager
var once sync.Once

// GetTeardownManager returns the process wide manager. Its context is
// cancelled on SIGINT or SIGTERM.
func GetTeardownManager() *Manager {
	once.Do(func() {
		manager = newManager(context.Background())
		go manager.awaitSignal()
	})
	return manager
}

func newManager(parent context.Context) *Manager {
	ctx, cancel := context.WithCancel(parent)
	return &Manager{
		ctx:       ctx,
		cancel:    cancel,
		wg:        &sync.WaitGroup{},
		teardowns: make([]func(), 0),
	}
}

func (m *Manager) awaitSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		m.cancel()
	case <-m.ctx.Done():
	}
	signal.Stop(sig)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) WaitGroup() *sync.WaitGroup {
	return m.wg
}

// TeardownFunc registers f to run once the context is done, after every
// goroutine tracked by the wait group has finished.
func (m *Manager) TeardownFunc(f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardowns = append(m.teardowns, f)
}

func (m *Manager) Wait() {
	<-m.ctx.Done()
	m.wg.Wait()

	m.mu.Lock()
	teardowns := m.teardowns
	m.mu.Unlock()
	for _, f := range teardowns {
		f()
	}
}
