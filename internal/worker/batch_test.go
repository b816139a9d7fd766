package worker

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/shopspring/decimal"
)

// mockAnswerer echoes the question and counts calls
type mockAnswerer struct {
	calls atomic.Int32
	delay time.Duration
}

func (m *mockAnswerer) Ask(ctx context.Context, ds model.Dataset, question string) model.Answer {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return model.Answer{
		Text:   "answer: " + question,
		Source: model.SourceRule,
		Value:  decimal.NewFromInt(int64(len(ds))),
	}
}

func TestBatchProcessor_ProcessQuestions(t *testing.T) {
	answerer := &mockAnswerer{delay: 5 * time.Millisecond}
	processor := NewBatchProcessor(answerer, 3)

	ds := model.Dataset{{OrderID: "ORD1000"}, {OrderID: "ORD1001"}}
	questions := []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"}

	results := processor.ProcessQuestions(context.Background(), ds, questions)

	if len(results) != len(questions) {
		t.Fatalf("expected %d results, got %d", len(questions), len(results))
	}

	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Question, res.Error)
		}
		if res.Index != i || res.Question != questions[i] {
			t.Errorf("result %d out of order: %+v", i, res)
		}
		if res.Answer.Text != "answer: "+questions[i] {
			t.Errorf("unexpected answer %q", res.Answer.Text)
		}
		if !res.Answer.Value.Equal(decimal.NewFromInt(2)) {
			t.Errorf("expected answerer to see the full dataset")
		}
	}

	if answerer.calls.Load() != int32(len(questions)) {
		t.Errorf("expected %d calls, got %d", len(questions), answerer.calls.Load())
	}
}

func TestBatchProcessor_ProcessQuestions_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnswerer{}, 2)

	results := processor.ProcessQuestions(context.Background(), nil, nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessQuestions_Cancelled(t *testing.T) {
	answerer := &mockAnswerer{}
	processor := NewBatchProcessor(answerer, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := processor.ProcessQuestions(ctx, nil, []string{"q1", "q2"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected cancellation error for %s", res.Question)
		}
	}
	if answerer.calls.Load() != 0 {
		t.Errorf("expected no questions answered, got %d", answerer.calls.Load())
	}
}

// cancellingAnswerer cancels the batch as soon as it answers its first question
type cancellingAnswerer struct {
	calls  atomic.Int32
	cancel context.CancelFunc
}

func (c *cancellingAnswerer) Ask(ctx context.Context, ds model.Dataset, question string) model.Answer {
	c.calls.Add(1)
	c.cancel()
	return model.Answer{Text: "answer: " + question, Source: model.SourceRule}
}

func TestBatchProcessor_ProcessQuestions_CancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	answerer := &cancellingAnswerer{cancel: cancel}
	processor := NewBatchProcessor(answerer, 1)

	questions := make([]string, 20)
	for i := range questions {
		questions[i] = "q" + strconv.Itoa(i)
	}

	done := make(chan []*AskResult)
	go func() { done <- processor.ProcessQuestions(ctx, nil, questions) }()

	var results []*AskResult
	select {
	case results = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled batch did not return")
	}

	if len(results) != len(questions) {
		t.Fatalf("expected %d results, got %d", len(questions), len(results))
	}
	if results[0].Error != nil || results[0].Answer.Text != "answer: q0" {
		t.Errorf("expected first question answered, got %+v", results[0])
	}
	for _, res := range results[1:] {
		if res.Error == nil {
			t.Errorf("expected %s to be cancelled", res.Question)
		}
	}
	if n := answerer.calls.Load(); n != 1 {
		t.Errorf("expected 1 question answered, got %d", n)
	}
}

func TestReadQuestionsFromFile(t *testing.T) {
	content := `
# Questions for the weekly review
What is the highest selling product?
Who is the top customer?

What is the highest selling product?
Which region sells the most?
`
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	questions, err := ReadQuestionsFromFile(path)
	if err != nil {
		t.Fatalf("ReadQuestionsFromFile failed: %v", err)
	}

	expected := []string{
		"What is the highest selling product?",
		"Who is the top customer?",
		"Which region sells the most?",
	}
	if len(questions) != len(expected) {
		t.Fatalf("expected %d questions, got %d: %v", len(expected), len(questions), questions)
	}
	for i, q := range expected {
		if questions[i] != q {
			t.Errorf("question %d: expected %q, got %q", i, q, questions[i])
		}
	}
}

func TestReadQuestionsFromFile_Missing(t *testing.T) {
	if _, err := ReadQuestionsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	processor := NewBatchProcessor(&mockAnswerer{}, 2)
	results, err := processor.ProcessFile(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 2 || results[0].Question != "a" || results[1].Question != "b" {
		t.Errorf("unexpected results: %+v", results)
	}
}
