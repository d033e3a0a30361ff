package natsgath

import (
	"log/slog"

	"github.com/nats-io/nats.go"
)

// New creates a gatherer that publishes progress of one handin to subject.
func New(nc *nats.Conn, handinUuid string, subject string, log *slog.Logger) *natsGatherer {
	if log == nil {
		log = slog.Default()
	}
	return &natsGatherer{
		pub:        nc,
		subject:    subject,
		handinUuid: handinUuid,
		log:        log,
	}
}
