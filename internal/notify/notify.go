// Package notify delivers user-visible outcome messages.
package notify

import (
	"log/slog"
	"sync"
)

// Sink receives success and failure messages for the user.
type Sink interface {
	Success(message string)
	Error(message string)
}

// LogSink writes messages to a logger.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Success(message string) {
	s.logger.Info("notification", "kind", KindSuccess, "message", message)
}

func (s *LogSink) Error(message string) {
	s.logger.Warn("notification", "kind", KindError, "message", message)
}

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Recorder keeps the most recent messages in memory and forwards them to an
// optional next sink.
type Recorder struct {
	next Sink
	max  int

	mu       sync.Mutex
	messages []Message
}

func NewRecorder(next Sink, max int) *Recorder {
	if max <= 0 {
		max = 50
	}
	return &Recorder{next: next, max: max}
}

func (r *Recorder) Success(message string) {
	r.add(Message{Kind: KindSuccess, Text: message})
	if r.next != nil {
		r.next.Success(message)
	}
}

func (r *Recorder) Error(message string) {
	r.add(Message{Kind: KindError, Text: message})
	if r.next != nil {
		r.next.Error(message)
	}
}

func (r *Recorder) add(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	if len(r.messages) > r.max {
		r.messages = r.messages[len(r.messages)-r.max:]
	}
}

// Messages returns a copy of the recorded messages, oldest first.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent message.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}
