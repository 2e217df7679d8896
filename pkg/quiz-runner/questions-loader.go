package quiz_runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxOptions is the number of options that can be labelled with a single letter.
const MaxOptions = 26

// ErrInvalidQuestionSet is returned when a loaded question set cannot be run.
var ErrInvalidQuestionSet = errors.New("invalid question set")

// Question bundles a prompt, its options and the index of the correct option.
type Question struct {
	Question        string   `json:"question" yaml:"question"`
	PossibleAnswers []string `json:"possibleAnswers" yaml:"possibleAnswers"`
	CorrectAnswer   int      `json:"correctAnswer" yaml:"correctAnswer"`
}

// DefaultQuestions returns a fresh copy of the built-in Maths Set A questions.
func DefaultQuestions() []Question {
	return []Question{
		{
			Question:        "Compute Spearman’s rank correlation coefficient from the following data:\nX: 40,42,45,35,36,39 \nY: 46,43,44,39,40,43",
			PossibleAnswers: []string{"0.7714", "0.7614", "0", "0.78"},
			CorrectAnswer:   0,
		},
		{
			Question:        "Fit a line y on x to the following data \n X: 0,1,2,3,4 \n Y: 1,1.8,3.3,4.5,6.3",
			PossibleAnswers: []string{"a = 0.47, b = 1.3", "a = 0.72, b = 1.33", "a = 0.73, b = 1.2", "a = 0.44, b = 1.22"},
			CorrectAnswer:   1,
		},
		{
			Question:        "A continuous random variable has probability density function: f(x)=k(x- x^2), 0≤x≤1. Find (i) mean, (ii) variance.",
			PossibleAnswers: []string{"E(x)=0.5 and Var(x)=0.5", "E(x)=0.05 and Var(x)=0.3", "E(x)=0.3 and Var(x)=0.05", "E(x)=0.5 and Var(x)=0.05"},
			CorrectAnswer:   3,
		},
		{
			Question:        "Earn A contains 2 black and 1 white balls; earn B contains 1 black and 2 white balls; earn C contains 2 black and 2 white balls. One of the urns is selected at random and 1 ball is drawn. What is the probability of drawing a white ball from earn B?",
			PossibleAnswers: []string{"1/9", "1/3", "4/9", "2/9"},
			CorrectAnswer:   2,
		},
		{
			Question: "Find the Fourier expansion of f(x)=xcosx, −π<x<π.",
			PossibleAnswers: []string{
				"(a_{0})=0, (a_{n})=0, (b_{n})=(frac{-2pi n}{n^{2}-1})",
				"(a_{0})=(frac{-2pi n}{n^{2}-1}), (a_{n})=0, (b_{n})=0)",
				"(a_{0})=(frac{-4pi n}{n^{2}-1}), (a_{n})=0, (b_{n})=(frac{-2pi n}{n^{2}-1})",
				"(a_{0})=(frac{-2 pi n}{n^{2}-1}), (a_{n})=(frac{-4 pi n}{n^{2}-1}), (b_{n})=0",
			},
			CorrectAnswer: 0,
		},
	}
}

// LoadQuizQuestionsFromFile reads a question set from a YAML or JSON file and validates it.
// Files ending in .json are decoded as JSON, everything else as YAML.
func LoadQuizQuestionsFromFile(path string) ([]Question, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	var questions []Question
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		questions, err = decodeJSONQuestions(fileContent)
	} else {
		questions, err = decodeYAMLQuestions(fileContent)
	}
	if err != nil {
		return nil, err
	}

	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func decodeJSONQuestions(data []byte) ([]Question, error) {
	var questions []Question
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&questions); err != nil {
		return nil, fmt.Errorf("parse json questions: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json questions: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json questions: %w", err)
	}
	return questions, nil
}

func decodeYAMLQuestions(data []byte) ([]Question, error) {
	var questions []Question
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrInvalidQuestionSet)
		}
		return nil, fmt.Errorf("parse yaml questions: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml questions: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml questions: %w", err)
	}
	return questions, nil
}

// ValidateQuestions checks that every question can be rendered and scored.
// The built-in set is not passed through here.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestionSet)
	}
	for i, q := range questions {
		n := len(q.PossibleAnswers)
		if n == 0 || n > MaxOptions {
			return fmt.Errorf("%w: question %d has %d options, want 1..%d", ErrInvalidQuestionSet, i+1, n, MaxOptions)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= n {
			return fmt.Errorf("%w: question %d correct answer %d out of range", ErrInvalidQuestionSet, i+1, q.CorrectAnswer)
		}
	}
	return nil
}
