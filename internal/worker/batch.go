package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/salesight/internal/model"
)

// Answerer answers one question over a dataset
type Answerer interface {
	Ask(ctx context.Context, ds model.Dataset, question string) model.Answer
}

// AskJob represents one question in a batch
type AskJob struct {
	Index    int
	Question string
	Dataset  model.Dataset
	Answerer Answerer
}

// Execute executes the ask job
func (j *AskJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &AskResult{Index: j.Index, Question: j.Question, Error: err}
	}
	return &AskResult{
		Index:    j.Index,
		Question: j.Question,
		Answer:   j.Answerer.Ask(ctx, j.Dataset, j.Question),
	}
}

// AskResult represents the result of an ask job
type AskResult struct {
	Index    int
	Question string
	Answer   model.Answer
	Error    error // Set only when the batch was cancelled before the question ran
}

// GetError returns the error from the ask result
func (r *AskResult) GetError() error {
	return r.Error
}

// BatchProcessor answers many questions concurrently against one dataset.
// The dataset is only read, so sharing it across workers is safe.
type BatchProcessor struct {
	answerer    Answerer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(answerer Answerer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		answerer:    answerer,
		concurrency: concurrency,
	}
}

// ProcessQuestions answers questions concurrently and returns results in input order
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, ds model.Dataset, questions []string) []*AskResult {
	if len(questions) == 0 {
		return []*AskResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	askResults := make([]*AskResult, len(questions))
	cancelled := false
	for i, question := range questions {
		job := &AskJob{
			Index:    i,
			Question: question,
			Dataset:  ds,
			Answerer: b.answerer,
		}
		if !pool.Submit(job) {
			cancelled = true
			askResults[i] = &AskResult{Index: i, Question: question, Error: context.Cause(ctx)}
		}
	}

	var results []Result
	if cancelled {
		results = pool.Shutdown()
	} else {
		results = pool.Wait()
	}

	for _, result := range results {
		r := result.(*AskResult)
		askResults[r.Index] = r
	}

	// Jobs dropped by a cancelled pool never produce a result
	for i, r := range askResults {
		if r == nil {
			askResults[i] = &AskResult{Index: i, Question: questions[i], Error: context.Canceled}
		}
	}

	return askResults
}

// ProcessFile reads questions from a file and answers them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, ds model.Dataset, filePath string) ([]*AskResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, ds, questions), nil
}

// ReadQuestionsFromFile reads questions from a file (one per line).
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
