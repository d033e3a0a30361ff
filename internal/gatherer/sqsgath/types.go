package sqsgath

import (
	"log/slog"
	"time"

	"github.com/programme-lv/reporter/api"
	"github.com/programme-lv/reporter/internal/gatherer"
)

type sqsGatherer struct {
	sqsClient  sqsSender
	queueUrl   string
	handinUuid string
	log        *slog.Logger
}

var _ gatherer.Gatherer = (*sqsGatherer)(nil)

// StartReport implements gatherer.Gatherer.
func (s *sqsGatherer) StartReport(homeworkId string, evaluators int) {
	s.send(api.NewStartReport(s.handinUuid, homeworkId, evaluators))
}

// FinishCollect implements gatherer.Gatherer.
func (s *sqsGatherer) FinishCollect(accepted bool, partials int, result string) {
	result = gatherer.TrimToRect(result, api.MaxTextHeight*2, api.MaxTextWidth*2)
	s.send(api.NewFinishCollect(s.handinUuid, accepted, partials, result))
}

// SentReport implements gatherer.Gatherer.
func (s *sqsGatherer) SentReport(payloadBytes int, elapsed time.Duration) {
	s.send(api.NewSentReport(s.handinUuid, payloadBytes, elapsed))
}

// AckReport implements gatherer.Gatherer.
func (s *sqsGatherer) AckReport() {
	s.send(api.NewAckReport(s.handinUuid))
}

// FailReport implements gatherer.Gatherer.
func (s *sqsGatherer) FailReport(state string, err error) {
	msg := gatherer.TrimToRect(err.Error(), api.MaxTextHeight*2, api.MaxTextWidth*2)
	s.send(api.NewFailReport(s.handinUuid, state, msg))
}
