package session

import (
	"atlas-maple2/inventory"
	"atlas-maple2/kafka/producer"
	"context"
	"errors"
	"sync"

	"github.com/Chronicle20/atlas-constants/channel"
	"github.com/Chronicle20/atlas-constants/world"
	"github.com/Chronicle20/atlas-model/model"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

var ErrClosed = errors.New("session closed")

// Command runs on the session's own goroutine with exclusive access to the inventory.
type Command func(p *inventory.Processor)

type outbound struct {
	token    string
	messages []kafka.Message
}

// Model is the connection scoped owner of one character's inventory. Commands
// are applied one at a time, in submission order, by a single goroutine.
// Notifications leave through a queue drained by a single writer.
type Model struct {
	id          uuid.UUID
	tenant      tenant.Model
	characterId uint32
	worldId     world.Id
	channelId   channel.Id
	l           logrus.FieldLogger
	processor   *inventory.Processor
	downstream  producer.Provider

	mu       sync.RWMutex
	closed   bool
	commands chan Command
	outbound chan outbound
	wg       sync.WaitGroup

	released    chan struct{}
	releaseOnce sync.Once
}

func NewModel(l logrus.FieldLogger, ctx context.Context, id uuid.UUID, characterId uint32, worldId world.Id, channelId channel.Id, inv *inventory.Inventory, downstream producer.Provider, depth int) *Model {
	if depth < 1 {
		depth = 1
	}
	m := &Model{
		id:          id,
		tenant:      tenant.MustFromContext(ctx),
		characterId: characterId,
		worldId:     worldId,
		channelId:   channelId,
		l:           l.WithField("session_id", id.String()).WithField("character_id", characterId),
		downstream:  downstream,
		commands:    make(chan Command, depth),
		outbound:    make(chan outbound, depth),
		released:    make(chan struct{}),
	}
	m.processor = inventory.NewProcessor(m.l, ctx, characterId, inv, m.enqueue)
	return m
}

func (m *Model) Id() uuid.UUID {
	return m.id
}

func (m *Model) Tenant() tenant.Model {
	return m.tenant
}

func (m *Model) CharacterId() uint32 {
	return m.characterId
}

func (m *Model) WorldId() world.Id {
	return m.worldId
}

func (m *Model) ChannelId() channel.Id {
	return m.channelId
}

// Released is closed once the session has stopped and its inventory has been
// written back to storage.
func (m *Model) Released() <-chan struct{} {
	return m.released
}

func (m *Model) release() {
	m.releaseOnce.Do(func() {
		close(m.released)
	})
}

// Start launches the command loop and the outbound writer.
func (m *Model) Start() {
	m.wg.Add(2)
	go m.process()
	go m.write()
	m.l.Debugf("Session started.")
}

func (m *Model) process() {
	defer m.wg.Done()
	defer close(m.outbound)
	for c := range m.commands {
		c(m.processor)
	}
}

func (m *Model) write() {
	defer m.wg.Done()
	for o := range m.outbound {
		if err := m.downstream(o.token)(model.FixedProvider(o.messages)); err != nil {
			m.l.WithError(err).Errorf("Unable to deliver [%d] message(s).", len(o.messages))
		}
	}
}

// enqueue is the producer handed to the session's processor. It is only
// reached from the command loop, so the outbound queue has a single writer.
func (m *Model) enqueue(token string) producer.MessageProducer {
	return func(p model.Provider[[]kafka.Message]) error {
		ms, err := p()
		if err != nil {
			return err
		}
		m.outbound <- outbound{token: token, messages: ms}
		return nil
	}
}

// Submit queues c behind every previously submitted command.
func (m *Model) Submit(c Command) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	m.commands <- c
	return nil
}

// Stop refuses further commands, lets queued ones finish, and waits for the
// outbound queue to drain. Afterwards the inventory may be read directly.
func (m *Model) Stop() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.commands)
	m.mu.Unlock()

	m.wg.Wait()
	m.l.Debugf("Session stopped.")
}

// Inventory exposes the owned inventory. Only safe once the session has stopped.
func (m *Model) Inventory() *inventory.Inventory {
	return m.processor.Inventory()
}

// Query runs f on the session goroutine and waits for its result.
func Query[T any](m *Model, f func(p *inventory.Processor) T) (T, error) {
	result := make(chan T, 1)
	if err := m.Submit(func(p *inventory.Processor) {
		result <- f(p)
	}); err != nil {
		var zero T
		return zero, err
	}
	return <-result, nil
}
