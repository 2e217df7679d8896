package main

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quizRunner "console-quiz/pkg/quiz-runner"
)

func TestLoadQuestions_DefaultSet(t *testing.T) {
	questions, err := loadQuestions("")
	require.NoError(t, err)
	assert.Equal(t, quizRunner.DefaultQuestions(), questions)
}

func TestLoadQuestions_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"question":"q","possibleAnswers":["a"],"correctAnswer":4}]`), 0o600))

	_, err := loadQuestions(path)
	require.ErrorIs(t, err, quizRunner.ErrInvalidQuestionSet)
	assert.Contains(t, err.Error(), path)
}

func TestInterruptExitCode(t *testing.T) {
	cases := map[string]struct {
		sig  os.Signal
		code int
	}{
		"interrupt": {sig: syscall.SIGINT, code: 130},
		"terminate": {sig: syscall.SIGTERM, code: 143},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancelCause(context.Background())
			cancel(&interruptError{sig: tc.sig})

			code, interrupted := interruptExitCode(ctx)
			require.True(t, interrupted)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestInterruptExitCode_PlainCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, interrupted := interruptExitCode(ctx)
	assert.False(t, interrupted)
}

func TestNotifyInterrupt_SignalCancelsContext(t *testing.T) {
	ctx, stop := notifyInterrupt(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGINT")
	}
	code, interrupted := interruptExitCode(ctx)
	require.True(t, interrupted)
	assert.Equal(t, 130, code)
}

func TestNotifyInterrupt_StopIsNotAnInterrupt(t *testing.T) {
	ctx, stop := notifyInterrupt(context.Background())
	stop()

	<-ctx.Done()
	_, interrupted := interruptExitCode(ctx)
	assert.False(t, interrupted)
}
