package game

import (
	"errors"

	"go.uber.org/zap"
)

// Message is a single outgoing emission.
type Message struct {
	// Text is nil, a string, a Tuple, or any other value the sink accepts.
	Text    any
	From    string
	Options map[string]any
}

// Emitter delivers messages to a recipient.
type Emitter interface {
	Emit(Message)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Message)

// Emit calls f(msg).
func (f EmitterFunc) Emit(msg Message) {
	f(msg)
}

// PronounEmitter rewrites pronoun markers against the subject's current
// gender before handing the message to the next emitter. Substitution is
// best effort: the next emitter is called exactly once per message, with the
// original text whenever rewriting fails.
type PronounEmitter struct {
	next    Emitter
	subject AttributeReader
	logger  *zap.Logger
	metrics *Metrics
}

// NewPronounEmitter wraps next. logger and metrics may be nil.
func NewPronounEmitter(next Emitter, subject AttributeReader, logger *zap.Logger, metrics *Metrics) *PronounEmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PronounEmitter{next: next, subject: subject, logger: logger, metrics: metrics}
}

// Emit implements Emitter.
func (e *PronounEmitter) Emit(msg Message) {
	if msg.Text == nil {
		e.next.Emit(msg)
		return
	}
	gender := GenderOf(e.subject)
	result := SubstitutePronouns(msg.Text, gender)
	switch {
	case result.Err == nil:
		e.metrics.substitution(gender)
	case errors.Is(result.Err, ErrUnsupportedPayload):
	default:
		e.metrics.substitutionFailure()
		e.logger.Warn("pronoun substitution failed",
			zap.String("gender", string(gender)),
			zap.Error(result.Err))
	}
	msg.Text = result.Text
	e.next.Emit(msg)
}
