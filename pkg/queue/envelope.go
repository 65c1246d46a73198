package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the standard Queueable produced by job factories. Custom job
// types may embed it to inherit the priority/delay plumbing.
type Envelope struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	Job         string `json:"job"` // "Class@method"
	Args        []any  `json:"data"`
	JobPriority int    `json:"priority"`
	JobDelay    int    `json:"delay"`
	CreatedAt   int64  `json:"createdAt"`
}

// NewEnvelope creates an envelope for the given class/method pair carrying
// the decoded dispatch arguments.
func NewEnvelope(class, method string, args []any) *Envelope {
	return &Envelope{
		UUID:        uuid.New().String(),
		DisplayName: class,
		Job:         class + "@" + method,
		Args:        args,
		CreatedAt:   time.Now().Unix(),
	}
}

func (e *Envelope) SetPriority(priority int) { e.JobPriority = priority }

func (e *Envelope) SetDelay(seconds int) { e.JobDelay = seconds }

func (e *Envelope) Priority() int { return e.JobPriority }

func (e *Envelope) Delay() int { return e.JobDelay }

// Body serializes the envelope for the queue backend.
func (e *Envelope) Body() ([]byte, error) {
	return json.Marshal(e)
}
