package producer_test

import (
	"atlas-maple2/kafka/producer"
	"context"
	"errors"
	"testing"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func TestProviderResolvesTopic(t *testing.T) {
	t.Setenv("EVENT_TOPIC_TEST", "test.status")
	l, _ := test.NewNullLogger()
	w := &fakeWriter{}

	pp := producer.ProviderImpl(l)(context.Background())(w)
	err := pp("EVENT_TOPIC_TEST")(model.FixedProvider([]kafka.Message{{Value: []byte("a")}, {Value: []byte("b")}}))
	if err != nil {
		t.Fatalf("Unable to produce: %v", err)
	}
	if len(w.written) != 2 {
		t.Fatalf("Expected [2] messages, got [%d].", len(w.written))
	}
	for _, m := range w.written {
		if m.Topic != "test.status" {
			t.Fatalf("Expected topic [test.status], got [%s].", m.Topic)
		}
	}
}

func TestProviderRejectsUnresolvedTopic(t *testing.T) {
	t.Setenv("EVENT_TOPIC_UNSET", "")
	l, _ := test.NewNullLogger()
	w := &fakeWriter{}

	pp := producer.ProviderImpl(l)(context.Background())(w)
	err := pp("EVENT_TOPIC_UNSET")(model.FixedProvider([]kafka.Message{{Value: []byte("a")}}))
	if !errors.Is(err, producer.ErrTopicUnresolved) {
		t.Fatalf("Expected unresolved topic, got [%v].", err)
	}
	if len(w.written) != 0 {
		t.Fatalf("Expected nothing written, got [%d] messages.", len(w.written))
	}
}

func TestProviderReportsFailures(t *testing.T) {
	t.Setenv("EVENT_TOPIC_TEST", "test.status")
	l, _ := test.NewNullLogger()
	failure := errors.New("broker down")

	pp := producer.ProviderImpl(l)(context.Background())(&fakeWriter{err: failure})
	if err := pp("EVENT_TOPIC_TEST")(model.FixedProvider([]kafka.Message{{Value: []byte("a")}})); !errors.Is(err, failure) {
		t.Fatalf("Expected writer error, got [%v].", err)
	}

	pp = producer.ProviderImpl(l)(context.Background())(&fakeWriter{})
	if err := pp("EVENT_TOPIC_TEST")(model.ErrorProvider[[]kafka.Message](failure)); !errors.Is(err, failure) {
		t.Fatalf("Expected provider error, got [%v].", err)
	}
}
