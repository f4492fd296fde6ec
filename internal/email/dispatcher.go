package email

import (
	"log/slog"

	"github.com/jcarver/rentroll/internal/task"
)

// Dispatcher sends a recorded task communication through a transport
// and resolves its status: pending becomes delivered on success and
// failed on error. It never returns the transport error to the caller;
// the outcome lives on the communication record.
type Dispatcher struct {
	transport Transport
	comms     *task.CommRepository
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(transport Transport, comms *task.CommRepository) *Dispatcher {
	return &Dispatcher{transport: transport, comms: comms}
}

// Dispatch attempts delivery of a pending communication and records
// the outcome. SMS messages go through the same transport, addressed
// to the carrier's email-to-SMS gateway.
func (d *Dispatcher) Dispatch(c *task.Communication) {
	subject := c.Subject
	if subject == "" {
		subject = "Message about your unit"
	}

	if err := d.transport.Send([]string{c.Recipient}, subject, c.Message); err != nil {
		slog.Warn("communication delivery failed",
			"commId", c.ID, "taskId", c.TaskID, "recipient", c.Recipient, "error", err)
		if markErr := d.comms.MarkFailed(c.ID, err.Error()); markErr != nil {
			slog.Error("marking communication failed", "commId", c.ID, "error", markErr)
		}
		return
	}

	if err := d.comms.MarkDelivered(c.ID); err != nil {
		slog.Error("marking communication delivered", "commId", c.ID, "error", err)
	}
}

// LogTransport is the dev-mode transport: it logs instead of sending.
type LogTransport struct{}

// Send logs the message and reports success.
func (LogTransport) Send(to []string, subject, body string) error {
	slog.Info("email (dev mode, not sent)", "to", to, "subject", subject, "bytes", len(body))
	return nil
}
