package quiz_runner

import "time"

// Outcome is how a single response was scored.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeSkipped   Outcome = "skipped"
)

// AnswerRecord is what happened to a single question during a run.
type AnswerRecord struct {
	QuestionIndex     int     `json:"questionIndex"`
	Question          string  `json:"question"`
	Response          string  `json:"response"`
	Normalized        string  `json:"normalized"`
	Outcome           Outcome `json:"outcome"`
	GivenAnswer       int     `json:"givenAnswer"` // -1 when skipped
	CorrectAnswer     int     `json:"correctAnswer"`
	GivenOptionText   string  `json:"givenOptionText,omitempty"`
	CorrectOptionText string  `json:"correctOptionText"`
}

// Result is the outcome of one quiz run.
type Result struct {
	RunID      string         `json:"runId"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Completed  bool           `json:"completed"`
	Answers    []AnswerRecord `json:"answers"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
}

func (r *Result) record(a AnswerRecord) {
	if a.Outcome == OutcomeCorrect {
		r.Score++
	}
	r.Answers = append(r.Answers, a)
}

func (r *Result) finish(now time.Time) {
	r.FinishedAt = now
	if r.Total > 0 {
		r.Percentage = float64(r.Score) * 100 / float64(r.Total)
	}
}
