package message

import (
	"atlas-maple2/kafka/producer"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

type entry struct {
	token    string
	messages []kafka.Message
}

// Buffer collects messages in the order they were put.
type Buffer struct {
	entries []entry
}

func NewBuffer() *Buffer {
	return &Buffer{entries: make([]entry, 0)}
}

func (b *Buffer) Put(token string, p model.Provider[[]kafka.Message]) error {
	ms, err := p()
	if err != nil {
		return err
	}
	b.entries = append(b.entries, entry{token: token, messages: ms})
	return nil
}

func (b *Buffer) GetAll() map[string][]kafka.Message {
	results := make(map[string][]kafka.Message)
	for _, e := range b.entries {
		results[e.token] = append(results[e.token], e.messages...)
	}
	return results
}

func (b *Buffer) Len() int {
	c := 0
	for _, e := range b.entries {
		c += len(e.messages)
	}
	return c
}

// Emit runs f against a fresh buffer and hands everything it buffered to p, in
// order. Messages are only ever put after the mutation they describe has been
// applied, so they are delivered even when f reports a later failure. The
// error of f is returned unless delivery itself fails.
func Emit(p producer.Provider) func(f func(*Buffer) error) error {
	return func(f func(*Buffer) error) error {
		mb := NewBuffer()
		err := f(mb)
		for _, e := range mb.entries {
			if perr := p(e.token)(model.FixedProvider(e.messages)); perr != nil {
				return perr
			}
		}
		return err
	}
}
