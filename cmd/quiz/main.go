package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"console-quiz/pkg/logger"
	quizRunner "console-quiz/pkg/quiz-runner"
)

func loadQuestions(path string) ([]quizRunner.Question, error) {
	if path == "" {
		return quizRunner.DefaultQuestions(), nil
	}
	questions, err := quizRunner.LoadQuizQuestionsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading questions from %s: %w", path, err)
	}
	return questions, nil
}

func publishResult(ctx context.Context, ablyKey, channelName string, result quizRunner.Result, log *zap.Logger) {
	publisher, closeConn, err := quizRunner.NewAblyResultPublisher(ablyKey, channelName)
	if err != nil {
		log.Error("could not set up result publisher", zap.Error(err))
		return
	}
	defer closeConn()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := publisher.Publish(ctx, result); err != nil {
		log.Error("could not publish result", zap.Error(err), zap.String("channel", channelName))
		return
	}
	log.Debug("result published", zap.String("channel", channelName), zap.String("run_id", result.RunID))
}

// interruptError is the cancellation cause recorded when a signal arrives.
type interruptError struct {
	sig os.Signal
}

func (e *interruptError) Error() string {
	return fmt.Sprintf("interrupted by %v", e.sig)
}

// exitCode follows the shell convention of 128 plus the signal number.
func (e *interruptError) exitCode() int {
	if sig, ok := e.sig.(syscall.Signal); ok {
		return 128 + int(sig)
	}
	return 1
}

// notifyInterrupt cancels the returned context with an *interruptError when
// SIGINT or SIGTERM arrives. The stop function releases the signal handler.
func notifyInterrupt(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			cancel(&interruptError{sig: sig})
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigs)
		cancel(context.Canceled)
	}
}

// interruptExitCode reports whether ctx was cancelled by a signal and the exit code to use.
func interruptExitCode(ctx context.Context) (int, bool) {
	var interrupt *interruptError
	if errors.As(context.Cause(ctx), &interrupt) {
		return interrupt.exitCode(), true
	}
	return 0, false
}

func run() int {
	var questionsPath string
	var ablyPrivateKey string
	var channelName string
	var debug bool

	// Associate the flags with variables
	flag.StringVar(&questionsPath, "questions", "", "YAML or JSON question file (defaults to the built-in set)")
	flag.StringVar(&ablyPrivateKey, "ablyKey", "", "Ably private key, results are published only when set")
	flag.StringVar(&channelName, "channel", "quiz-results", "Ably channel for finished results")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging on stderr")
	flag.Parse()

	log, err := logger.New(debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error creating logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	questions, err := loadQuestions(questionsPath)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return 1
	}

	ctx, stop := notifyInterrupt(context.Background())
	defer stop()

	runner := quizRunner.NewQuizRunner(questions, os.Stdin, os.Stdout, log)
	result, err := runner.Run(ctx)
	if err != nil {
		if code, interrupted := interruptExitCode(ctx); interrupted {
			fmt.Println("\nQuiz interrupted.")
			log.Debug("quiz interrupted", zap.Int("answered", len(result.Answers)))
			return code
		}
		log.Error("quiz stopped", zap.Error(err))
		return 1
	}

	if ablyPrivateKey != "" {
		publishResult(ctx, ablyPrivateKey, channelName, result, log)
		if code, interrupted := interruptExitCode(ctx); interrupted {
			return code
		}
	}
	return 0
}

func main() {
	os.Exit(run())
}
