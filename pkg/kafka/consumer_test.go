package kafka

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// Stop must drain the reader goroutines before closing the worker queue;
// otherwise an in-flight enqueue panics on the closed channel.
func TestStopDrainsReadersBeforeClosingQueue(t *testing.T) {
	c := &Consumer{
		cfg:       &ConsumerConfig{WorkerCount: 1},
		readers:   make(map[string]*kafka.Reader),
		handlers:  make(map[string]MessageHandler),
		stopChan:  make(chan struct{}),
		msgChan:   make(chan *message, 1),
		partLocks: make(map[string]map[int]*sync.Mutex),
		hook:      NoopHook{},
	}

	c.workerWg.Add(1)
	go c.messageWorker()

	// hammer the queue the way consumeMessages does until Stop signals
	c.readerWg.Add(1)
	go func() {
		defer c.readerWg.Done()
		for c.enqueue("evaluations", kafka.Message{Value: []byte("{}")}) {
		}
	}()

	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
