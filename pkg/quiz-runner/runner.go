package quiz_runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuizRunner asks a fixed sequence of questions over a line based text stream.
type QuizRunner struct {
	questions []Question
	reader    *bufio.Reader
	out       io.Writer
	logger    *zap.Logger
	now       func() time.Time
}

// NewQuizRunner copies the question set so later changes by the caller do not affect a run.
// Questions are expected to carry at most MaxOptions options.
func NewQuizRunner(questions []Question, in io.Reader, out io.Writer, logger *zap.Logger) *QuizRunner {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.PossibleAnswers = append([]string(nil), q.PossibleAnswers...)
		qs[i] = q
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizRunner{
		questions: qs,
		reader:    bufio.NewReader(in),
		out:       out,
		logger:    logger,
		now:       time.Now,
	}
}

// Run asks every question in order and prints the final tally.
// If the input ends early the loop stops, the summary is still printed and
// the returned result has Completed set to false. Cancelling ctx, even while
// waiting for an answer, returns the partial result and ctx.Err(); the runner
// must not be reused afterwards.
func (r *QuizRunner) Run(ctx context.Context) (Result, error) {
	result := Result{
		RunID:     uuid.New().String(),
		Total:     len(r.questions),
		StartedAt: r.now(),
		Answers:   make([]AnswerRecord, 0, len(r.questions)),
	}
	logger := r.logger.With(zap.String("run_id", result.RunID))
	logger.Debug("starting quiz", zap.Int("questions", result.Total))

	completed := true
	for idx, q := range r.questions {
		if err := ctx.Err(); err != nil {
			result.finish(r.now())
			return result, err
		}

		r.displayQuestion(idx, q)
		fmt.Fprintf(r.out, "Your answer (%s): ", strings.Join(optionLabels(len(q.PossibleAnswers)), "/"))

		response, err := r.readResponse(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.finish(r.now())
			return result, ctxErr
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nInput ended, stopping quiz.")
			logger.Warn("input ended before the quiz was complete", zap.Int("answered", idx))
			completed = false
			break
		}
		if err != nil {
			result.finish(r.now())
			return result, fmt.Errorf("read answer for question %d: %w", idx+1, err)
		}

		answer := scoreResponse(idx, q, response)
		switch answer.Outcome {
		case OutcomeCorrect:
			fmt.Fprintln(r.out, "Correct!")
		case OutcomeIncorrect:
			fmt.Fprintf(r.out, "Incorrect! Correct answer is %s.\n", optionLabel(q.CorrectAnswer))
		default:
			fmt.Fprintln(r.out, "Invalid input, skipping question.")
		}
		logger.Debug("question answered",
			zap.Int("question", idx+1),
			zap.String("response", answer.Normalized),
			zap.String("outcome", string(answer.Outcome)))
		result.record(answer)
	}

	result.Completed = completed
	result.finish(r.now())
	fmt.Fprintf(r.out, "\nQuiz complete! \n You scored %d/%d.\n", result.Score, result.Total)
	logger.Debug("quiz finished", zap.Int("score", result.Score), zap.Bool("completed", completed))
	return result, nil
}

// displayQuestion outputs the question and its labelled options.
func (r *QuizRunner) displayQuestion(idx int, q Question) {
	fmt.Fprintf(r.out, "\nQuestion %d: %s\n", idx+1, q.Question)
	for i, option := range q.PossibleAnswers {
		fmt.Fprintf(r.out, "  %s. %s\n", optionLabel(i), option)
	}
}

type readResult struct {
	line string
	err  error
}

// readResponse returns the next line. A final line that is not newline
// terminated is still returned; io.EOF is only reported when nothing was left
// to read. The read goroutine is left blocked when ctx is cancelled first.
func (r *QuizRunner) readResponse(ctx context.Context) (string, error) {
	lines := make(chan readResult, 1)
	go func() {
		line, err := r.reader.ReadString('\n')
		lines <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-lines:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.line != "" {
				return res.line, nil
			}
			return "", res.err
		}
		return res.line, nil
	}
}

// NormalizeResponse trims surrounding whitespace and uppercases the response.
func NormalizeResponse(response string) string {
	return strings.ToUpper(strings.TrimSpace(response))
}

// ParseChoice maps a normalized response to an option index. It reports false
// unless the response is a single letter labelling one of optionCount options.
func ParseChoice(normalized string, optionCount int) (int, bool) {
	if len(normalized) != 1 {
		return -1, false
	}
	idx := int(normalized[0]) - 'A'
	if idx < 0 || idx >= optionCount {
		return -1, false
	}
	return idx, true
}

func scoreResponse(idx int, q Question, response string) AnswerRecord {
	answer := AnswerRecord{
		QuestionIndex: idx,
		Question:      q.Question,
		Response:      strings.TrimRight(response, "\r\n"),
		Normalized:    NormalizeResponse(response),
		GivenAnswer:   -1,
		CorrectAnswer: q.CorrectAnswer,
	}
	if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.PossibleAnswers) {
		answer.CorrectOptionText = q.PossibleAnswers[q.CorrectAnswer]
	}

	given, ok := ParseChoice(answer.Normalized, len(q.PossibleAnswers))
	if !ok {
		answer.Outcome = OutcomeSkipped
		return answer
	}
	answer.GivenAnswer = given
	answer.GivenOptionText = q.PossibleAnswers[given]
	if given == q.CorrectAnswer {
		answer.Outcome = OutcomeCorrect
	} else {
		answer.Outcome = OutcomeIncorrect
	}
	return answer
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}

func optionLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = optionLabel(i)
	}
	return labels
}
