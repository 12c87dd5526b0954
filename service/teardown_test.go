package service

import (
	"context"
	"testing"
	"time"
)

func TestWaitRunsTeardownsAfterWorkers(t *testing.T) {
	m := newManager(context.Background())

	order := make([]string, 0)
	m.WaitGroup().Add(1)
	go func() {
		defer m.WaitGroup().Done()
		<-m.Context().Done()
		time.Sleep(10 * time.Millisecond)
		order = append(order, "worker")
	}()
	m.TeardownFunc(func() { order = append(order, "first") })
	m.TeardownFunc(func() { order = append(order, "second") })

	m.cancel()
	m.Wait()

	if len(order) != 3 || order[0] != "worker" || order[1] != "first" || order[2] != "second" {
		t.Fatalf("Unexpected teardown order %v.", order)
	}
}
