package natsgath

import (
	"log/slog"
	"time"

	"github.com/programme-lv/reporter/api"
	"github.com/programme-lv/reporter/internal/gatherer"
)

type publisher interface {
	Publish(subject string, data []byte) error
}

type natsGatherer struct {
	pub        publisher
	subject    string
	handinUuid string
	log        *slog.Logger
}

var _ gatherer.Gatherer = (*natsGatherer)(nil)

func (s *natsGatherer) StartReport(homeworkId string, evaluators int) {
	s.send(api.NewStartReport(s.handinUuid, homeworkId, evaluators))
}

func (s *natsGatherer) FinishCollect(accepted bool, partials int, result string) {
	result = gatherer.TrimToRect(result, api.MaxTextHeight, api.MaxTextWidth)
	s.send(api.NewFinishCollect(s.handinUuid, accepted, partials, result))
}

func (s *natsGatherer) SentReport(payloadBytes int, elapsed time.Duration) {
	s.send(api.NewSentReport(s.handinUuid, payloadBytes, elapsed))
}

func (s *natsGatherer) AckReport() {
	s.send(api.NewAckReport(s.handinUuid))
}

func (s *natsGatherer) FailReport(state string, err error) {
	msg := gatherer.TrimToRect(err.Error(), api.MaxTextHeight, api.MaxTextWidth)
	s.send(api.NewFailReport(s.handinUuid, state, msg))
}
