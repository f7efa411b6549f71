package generator

import (
	"errors"
	"fmt"
)

// Task identifies a façade operation in error messages and logs.
type Task int

const (
	TaskPosts Task = iota + 1
	TaskCampaign
	TaskTopicIdeas
	TaskRefine
	TaskHashtags
	TaskTagline
	taskEnd
)

var taskNames = [...]string{
	TaskPosts:      "posts",
	TaskCampaign:   "campaign",
	TaskTopicIdeas: "topic-ideas",
	TaskRefine:     "refine",
	TaskHashtags:   "hashtags",
	TaskTagline:    "tagline",
}

var taskFailures = [...]string{
	TaskPosts:      "failed to generate content; the model may have returned an error or the network request failed",
	TaskCampaign:   "failed to generate the campaign",
	TaskTopicIdeas: "failed to generate topic ideas",
	TaskRefine:     "failed to refine the text",
	TaskHashtags:   "failed to generate hashtags",
	TaskTagline:    "failed to generate the design phrase",
}

var (
	_ [len(taskNames) - int(taskEnd)]struct{}
	_ [len(taskFailures) - int(taskEnd)]struct{}
)

func (t Task) String() string {
	if t <= 0 || t >= taskEnd {
		return fmt.Sprintf("Task(%d)", int(t))
	}
	return taskNames[t]
}

// Kind classifies a façade failure.
type Kind int

const (
	// KindInvalid is a request rejected before any remote call.
	KindInvalid Kind = iota + 1
	// KindTransport covers every failure to get an answer: network, timeout,
	// quota or server error. They are not told apart.
	KindTransport
	// KindMalformed means the model answered but the answer was not usable.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the only error type the façade operations return. Error() is the
// message shown to the user; Err keeps the cause for logs.
type Error struct {
	Task Task
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	failure := "generation failed"
	if e.Task > 0 && e.Task < taskEnd {
		failure = taskFailures[e.Task]
	}
	switch e.Kind {
	case KindMalformed:
		return failure + ": the model returned an unexpected response, please try again"
	case KindInvalid:
		if e.Err != nil {
			return failure + ": " + e.Err.Error()
		}
	}
	return failure
}

func (e *Error) Unwrap() error { return e.Err }

// ErrInvalidRequest is wrapped by every KindInvalid error.
var ErrInvalidRequest = errors.New("invalid request")

// IsMalformed reports whether err is a façade error caused by an unusable
// model response.
func IsMalformed(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindMalformed
}

func invalid(task Task, format string, args ...any) *Error {
	return &Error{Task: task, Kind: KindInvalid, Err: fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))}
}
