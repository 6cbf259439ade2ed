package application

import (
	"context"

	"github.com/customtee/platform-api/pkg/helpers"
	"github.com/customtee/platform-api/pkg/mailer"
)

// Notifier delivers transactional email jobs. Implementations must be safe
// for concurrent use; callers treat delivery as best-effort.
type Notifier interface {
	Notify(ctx context.Context, job mailer.EmailJob) error
}

// QueueNotifier publishes email jobs to the RabbitMQ email queue, where
// cmd/email_worker picks them up.
type QueueNotifier struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueNotifier(pub *helpers.RabbitPublisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (n *QueueNotifier) Notify(ctx context.Context, job mailer.EmailJob) error {
	return n.Pub.PublishJSON(ctx, job)
}

// NopNotifier drops every job. Used when mail sending is disabled or the
// broker is unavailable at startup.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, mailer.EmailJob) error { return nil }
