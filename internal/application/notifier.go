package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

// Mailer sends a plain-text message; *mailer.Mailgun implements it.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, text string) error
}

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop rejects a malformed message without requeueing it.
	Drop
	// Requeue hands the message back to the broker for another attempt.
	Requeue
)

// Notifier turns domain events into admin emails.
type Notifier struct {
	Mailer     Mailer
	Recipients []string
	Logger     *logrus.Logger
}

func NewNotifier(m Mailer, recipients []string, logger *logrus.Logger) *Notifier {
	return &Notifier{Mailer: m, Recipients: recipients, Logger: logger}
}

func (n *Notifier) Handle(ctx context.Context, body []byte) Outcome {
	var ev entity.Event
	if err := json.Unmarshal(body, &ev); err != nil || ev.Type == "" {
		if n.Logger != nil {
			n.Logger.WithError(err).Warn("dropping malformed event")
		}
		return Drop
	}
	if ev.Type != entity.EventSongRequestCreated || len(n.Recipients) == 0 {
		return Ack
	}

	subject, text := renderSongRequest(ev)
	if err := n.Mailer.Send(ctx, n.Recipients, subject, text); err != nil {
		if n.Logger != nil {
			n.Logger.WithError(err).WithField("type", ev.Type).Error("send notification failed")
		}
		return Requeue
	}
	return Ack
}

func renderSongRequest(ev entity.Event) (string, string) {
	str := func(k string) string {
		if v, ok := ev.Data[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	}
	subject := fmt.Sprintf("New song request: %s - %s", str("title"), str("artist"))
	var b strings.Builder
	fmt.Fprintf(&b, "%s requested a new song.\n\n", str("requested_by"))
	fmt.Fprintf(&b, "Title:  %s\n", str("title"))
	fmt.Fprintf(&b, "Artist: %s\n", str("artist"))
	fmt.Fprintf(&b, "Request id: %s\n", str("request_id"))
	fmt.Fprintf(&b, "Submitted at: %s\n", ev.OccurredAt.Format("2006-01-02 15:04 MST"))
	return subject, b.String()
}
