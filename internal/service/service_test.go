package service

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"pdf-explainer-be/internal/repository/memory"
	"pdf-explainer-be/pkg/explainer"
	"pdf-explainer-be/pkg/progress"
)

// nopLogger keeps test output clean.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// stubProvider scripts the backend's answers and records what was asked.
type stubProvider struct {
	mu sync.Mutex

	uploadResult *explainer.UploadResult
	uploadErr    error
	uploadCalls  int

	generateResult *explainer.GenerateResult
	generateErr    error
	generateDelay  time.Duration
	generateCalls  int
}

func (p *stubProvider) Upload(_ context.Context, _ string, _ []byte) (*explainer.UploadResult, error) {
	p.mu.Lock()
	p.uploadCalls++
	p.mu.Unlock()
	return p.uploadResult, p.uploadErr
}

func (p *stubProvider) Generate(_ context.Context, _ int, _ string) (*explainer.GenerateResult, error) {
	p.mu.Lock()
	p.generateCalls++
	delay := p.generateDelay
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return p.generateResult, p.generateErr
}

func (p *stubProvider) calls() (uploads, generates int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploadCalls, p.generateCalls
}

type exchangeFixture struct {
	store    *memory.SessionStore
	chat     IChatService
	consumer IConsumerService
	cancel   context.CancelFunc
}

const testTopic = "EXCHANGE_GENERATE_TEST"

// newExchangeFixture wires the real store, bus and consumer around a
// scripted provider, the same shape the container builds in production.
func newExchangeFixture(provider explainer.Provider) *exchangeFixture {
	store := memory.NewSessionStore()
	sim := progress.NewSimulator(time.Millisecond, nil)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	chat := NewChatService(store, pubSub, testTopic, sim, nopLogger{})
	consumer := NewConsumerService(pubSub, testTopic, provider, store, sim, 0, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	if err := consumer.Consume(ctx); err != nil {
		cancel()
		panic(err)
	}

	return &exchangeFixture{
		store:    store,
		chat:     chat,
		consumer: consumer,
		cancel:   cancel,
	}
}
