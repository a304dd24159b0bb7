package jobs

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWarmUpper struct {
	calls atomic.Int32
	err   error
}

func (c *countingWarmUpper) WarmUp(ctx context.Context) error {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return c.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler("whenever", &countingWarmUpper{}, time.Second, quietLogger())
	assert.Error(t, err)
}

func TestScheduler_Run(t *testing.T) {
	target := &countingWarmUpper{err: errors.New("feed down")}
	s, err := NewScheduler("@every 1h", target, time.Second, quietLogger())
	require.NoError(t, err)

	s.Run()
	assert.Equal(t, int32(1), target.calls.Load())
}

func TestScheduler_StartRunsImmediately(t *testing.T) {
	target := &countingWarmUpper{}
	s, err := NewScheduler("@every 1h", target, time.Second, quietLogger())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return target.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}
