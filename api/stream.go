package api

import "time"

// MsgType is a message type for report progress notifications
type MsgType string

// Progress message type constants
const (
	StartReportMsg   MsgType = "report_start"
	FinishCollectMsg MsgType = "collect_finish"
	SentReportMsg    MsgType = "report_sent"
	AckReportMsg     MsgType = "report_ack"
	FailReportMsg    MsgType = "report_fail"
)

// Size constraints for free-form text carried in notifications
const (
	MaxTextHeight = 40
	MaxTextWidth  = 80
)

// Header is the common header for all progress messages
type Header struct {
	HandinUuid string  `json:"handin_uuid"`
	MsgType    MsgType `json:"msg_type"`
}

// StartReport message sent when evaluators start running
type StartReport struct {
	Header
	HomeworkId  string `json:"homework_id"`
	Evaluators  int    `json:"evaluators"`
	StartedTime string `json:"started_time"`
}

// FinishCollect message sent once the score report is assembled
type FinishCollect struct {
	Header
	Accepted bool   `json:"accepted"`
	Partials int    `json:"partials"`
	Result   string `json:"result"`
}

// SentReport message sent after the encrypted report was posted
type SentReport struct {
	Header
	PayloadBytes int   `json:"payload_bytes"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}

// AckReport message sent when the website acknowledged the report
type AckReport struct {
	Header
	FinishedTime string `json:"finished_time"`
}

// FailReport message sent when the pipeline stops with an error
type FailReport struct {
	Header
	State        string `json:"state"`
	ErrorMessage string `json:"error_message"`
}

// Helper function to create a header
func NewHeader(handinUuid string, msgType MsgType) Header {
	return Header{
		HandinUuid: handinUuid,
		MsgType:    msgType,
	}
}

func NewStartReport(handinUuid, homeworkId string, evaluators int) StartReport {
	return StartReport{
		Header:      NewHeader(handinUuid, StartReportMsg),
		HomeworkId:  homeworkId,
		Evaluators:  evaluators,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewFinishCollect(handinUuid string, accepted bool, partials int, result string) FinishCollect {
	return FinishCollect{
		Header:   NewHeader(handinUuid, FinishCollectMsg),
		Accepted: accepted,
		Partials: partials,
		Result:   result,
	}
}

func NewSentReport(handinUuid string, payloadBytes int, elapsed time.Duration) SentReport {
	return SentReport{
		Header:       NewHeader(handinUuid, SentReportMsg),
		PayloadBytes: payloadBytes,
		ElapsedMs:    elapsed.Milliseconds(),
	}
}

func NewAckReport(handinUuid string) AckReport {
	return AckReport{
		Header:       NewHeader(handinUuid, AckReportMsg),
		FinishedTime: time.Now().Format(time.RFC3339),
	}
}

func NewFailReport(handinUuid, state, errorMessage string) FailReport {
	return FailReport{
		Header:       NewHeader(handinUuid, FailReportMsg),
		State:        state,
		ErrorMessage: errorMessage,
	}
}
