// Package stats turns raw per-player counters from the game server into the
// view shown on profiles and frozen into clan applications. Everything here
// is pure and safe for concurrent use.
package stats

type Engine struct {
	classifier *Classifier
	formatter  TimeFormatter
}

type Option func(*Engine)

func WithVocabulary(vocab *Vocabulary) Option {
	return func(e *Engine) {
		e.classifier = NewClassifier(vocab)
	}
}

func WithUnits(units Units) Option {
	return func(e *Engine) {
		e.formatter = NewTimeFormatter(units)
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier: NewClassifier(DefaultVocabulary()),
		formatter:  NewTimeFormatter(EnglishUnits),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

func (e *Engine) Formatter() TimeFormatter {
	return e.formatter
}
