package score

import (
	"strconv"
	"strings"

	"github.com/programme-lv/reporter/internal/gettext"
	"github.com/programme-lv/reporter/internal/jsontext"
	"github.com/programme-lv/reporter/internal/variant"
)

// PartialScore is the outcome of a single grading criterion.
type PartialScore struct {
	// TypeName identifies the evaluator implementation so the website can
	// pick a renderer for this partial.
	TypeName string
	Name     gettext.Message
	Score    float64
	Weight   float64
	Time     variant.Value
	Brief    gettext.Message
	Detail   []gettext.Message
}

func NewPartialScore(typeName string) PartialScore {
	return PartialScore{
		TypeName: typeName,
		Weight:   1,
		Time:     variant.Null{},
	}
}

// Report is the root document posted for a handin.
type Report struct {
	UUID         string
	Accepted     bool
	Result       gettext.Message
	CompileError gettext.Message
	Partials     []PartialScore
}

// FailSafe returns a rejected report carrying only msg.
func FailSafe(uuid string, msg gettext.Message) Report {
	return Report{UUID: uuid, Result: msg}
}

func writePartial(sb *strings.Builder, p PartialScore) {
	sb.WriteString(`{"name": `)
	gettext.WriteJSON(sb, p.Name)
	sb.WriteString(`, "typeName": `)
	jsontext.WriteQuoted(sb, p.TypeName)
	sb.WriteString(`, "score": `)
	sb.WriteString(variant.FormatFloat(p.Score))
	sb.WriteString(`, "weight": `)
	sb.WriteString(variant.FormatFloat(p.Weight))
	sb.WriteString(`, "time": `)
	variant.WriteJSON(sb, p.Time)
	sb.WriteString(`, "brief": `)
	gettext.WriteJSON(sb, p.Brief)
	sb.WriteString(`, "detail": [`)
	for i, d := range p.Detail {
		if i > 0 {
			sb.WriteString(", ")
		}
		gettext.WriteJSON(sb, d)
	}
	sb.WriteString("]}")
}

// WriteJSON appends the wire form of r to sb. compileError is only written
// when it carries a message.
func WriteJSON(sb *strings.Builder, r Report) {
	sb.WriteString(`{"uuid": `)
	jsontext.WriteQuoted(sb, r.UUID)
	sb.WriteString(`, "accepted": `)
	sb.WriteString(strconv.FormatBool(r.Accepted))
	sb.WriteString(`, "result": `)
	gettext.WriteJSON(sb, r.Result)
	if !r.CompileError.IsEmpty() {
		sb.WriteString(`, "compileError": `)
		gettext.WriteJSON(sb, r.CompileError)
	}
	sb.WriteString(`, "partials": [`)
	for i, p := range r.Partials {
		if i > 0 {
			sb.WriteString(", ")
		}
		writePartial(sb, p)
	}
	sb.WriteString("]}")
}

// Encode returns the UTF-8 wire body of r.
func (r Report) Encode() []byte {
	var sb strings.Builder
	WriteJSON(&sb, r)
	return []byte(sb.String())
}
