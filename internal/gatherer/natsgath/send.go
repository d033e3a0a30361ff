package natsgath

import (
	"encoding/json"
)

func (s *natsGatherer) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("failed to marshal progress message", "error", err)
		return
	}

	if err := s.pub.Publish(s.subject, b); err != nil {
		s.log.Warn("failed to publish progress message to NATS", "subject", s.subject, "error", err)
	}
}
