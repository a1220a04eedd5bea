package analyzer

import (
	"context"
	"math/rand/v2"
	"regexp"
	"sync"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/latency"
	"github.com/BerylCAtieno/opticours-api/internal/models"
)

// Analyzer produces the base analysis and the generated artifacts of a course file.
type Analyzer interface {
	Analyze(ctx context.Context, file *models.FileRecord) (*models.Content, error)
	Suggestions(ctx context.Context) (*models.Suggestions, error)
	Summary(ctx context.Context) (*models.Summary, error)
	Quiz(ctx context.Context) (*models.Quiz, error)
	Slides(ctx context.Context) (*models.Slides, error)
	CourseSheet(ctx context.Context) (*models.CourseSheet, error)
	TPSheet(ctx context.Context) (*models.TPSheet, error)
}

// Scripted response times of the simulated model.
const (
	AnalyzeLatency     = 3000 * time.Millisecond
	SuggestionsLatency = 2000 * time.Millisecond
	SummaryLatency     = 2500 * time.Millisecond
	QuizLatency        = 2000 * time.Millisecond
	SlidesLatency      = 2500 * time.Millisecond
	CourseSheetLatency = 2000 * time.Millisecond
	TPSheetLatency     = 2500 * time.Millisecond
)

const overview = "Analyse du contenu pédagogique réalisée avec succès."

var extensionPattern = regexp.MustCompile(`(?i)\.(pdf|docx|pptx)$`)

type Option func(*scriptedAnalyzer)

// WithLatency replaces the timer used to simulate response time.
func WithLatency(wait latency.Func) Option {
	return func(a *scriptedAnalyzer) {
		a.wait = wait
	}
}

// WithRand seeds the placeholder word count and read time.
func WithRand(src rand.Source) Option {
	return func(a *scriptedAnalyzer) {
		a.rnd = rand.New(src)
	}
}

type scriptedAnalyzer struct {
	wait latency.Func

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewScriptedAnalyzer returns an Analyzer serving fixed pedagogical content
// after the scripted delays.
func NewScriptedAnalyzer(opts ...Option) Analyzer {
	a := &scriptedAnalyzer{
		wait: latency.Timer,
		rnd:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x0b71c0)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Title is the file name without its course document extension.
func Title(filename string) string {
	return extensionPattern.ReplaceAllString(filename, "")
}

func (a *scriptedAnalyzer) Analyze(ctx context.Context, file *models.FileRecord) (*models.Content, error) {
	if err := a.wait(ctx, AnalyzeLatency); err != nil {
		return nil, err
	}

	a.mu.Lock()
	wordCount := a.rnd.IntN(5000) + 1000
	readTime := a.rnd.IntN(30) + 10
	a.mu.Unlock()

	return &models.Content{
		Title:     Title(file.Name),
		Overview:  overview,
		WordCount: wordCount,
		ReadTime:  readTime,
	}, nil
}

func (a *scriptedAnalyzer) Suggestions(ctx context.Context) (*models.Suggestions, error) {
	if err := a.wait(ctx, SuggestionsLatency); err != nil {
		return nil, err
	}
	return suggestions(), nil
}

func (a *scriptedAnalyzer) Summary(ctx context.Context) (*models.Summary, error) {
	if err := a.wait(ctx, SummaryLatency); err != nil {
		return nil, err
	}
	return summary(), nil
}

func (a *scriptedAnalyzer) Quiz(ctx context.Context) (*models.Quiz, error) {
	if err := a.wait(ctx, QuizLatency); err != nil {
		return nil, err
	}
	return quiz(), nil
}

func (a *scriptedAnalyzer) Slides(ctx context.Context) (*models.Slides, error) {
	if err := a.wait(ctx, SlidesLatency); err != nil {
		return nil, err
	}
	return slides(), nil
}

func (a *scriptedAnalyzer) CourseSheet(ctx context.Context) (*models.CourseSheet, error) {
	if err := a.wait(ctx, CourseSheetLatency); err != nil {
		return nil, err
	}
	return courseSheet(), nil
}

func (a *scriptedAnalyzer) TPSheet(ctx context.Context) (*models.TPSheet, error) {
	if err := a.wait(ctx, TPSheetLatency); err != nil {
		return nil, err
	}
	return tpSheet(), nil
}
