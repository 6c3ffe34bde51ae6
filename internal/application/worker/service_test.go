package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConsumer struct {
	running  bool
	startErr error
	stopErr  error
	starts   int
	stops    int
}

func (c *stubConsumer) Start(context.Context) error {
	c.starts++
	if c.startErr != nil {
		return c.startErr
	}
	c.running = true
	return nil
}

func (c *stubConsumer) Stop(context.Context) error {
	c.stops++
	if c.stopErr != nil {
		return c.stopErr
	}
	c.running = false
	return nil
}

func (c *stubConsumer) Running() bool {
	return c.running
}

func newWorkerService(consumer Consumer) *Service {
	f := newProcessorFixture()
	return NewService(consumer, f.processor)
}

func TestWorkerService_StartAndStop(t *testing.T) {
	consumer := &stubConsumer{}
	svc := newWorkerService(consumer)

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, 1, consumer.starts)
	assert.True(t, svc.Health().IsRunning)

	require.NoError(t, svc.Stop(context.Background()))
	assert.Equal(t, 1, consumer.stops)
	assert.False(t, svc.Health().IsRunning)
}

func TestWorkerService_DoubleStartFails(t *testing.T) {
	svc := newWorkerService(&stubConsumer{})

	require.NoError(t, svc.Start(context.Background()))
	require.Error(t, svc.Start(context.Background()))
}

func TestWorkerService_StopWithoutStartIsNoop(t *testing.T) {
	consumer := &stubConsumer{}
	svc := newWorkerService(consumer)

	require.NoError(t, svc.Stop(context.Background()))
	assert.Equal(t, 0, consumer.stops)
}

func TestWorkerService_ConsumerStartFailure(t *testing.T) {
	consumer := &stubConsumer{startErr: errors.New("stream not found")}
	svc := newWorkerService(consumer)

	require.Error(t, svc.Start(context.Background()))
	assert.False(t, svc.Health().IsRunning)
}
