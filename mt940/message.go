// Package mt940 parses SWIFT MT940 customer statement messages.
package mt940

import (
	"github.com/pkg/errors"
)

// Message is a single statement, from its 20 field up to the next one.
type Message struct {
	TransactionRefNo        string
	RefToRelatedMsg         string
	AccountID               string
	StatementNo             string
	SequenceNo              string
	OpeningBalance          Balance
	StatementLines          []StatementLine
	ClosingBalance          Balance
	ClosingAvailableBalance *AvailableBalance
	ForwardAvailableBalance []AvailableBalance
	// Information holds 86 fields that are not attached to a statement line.
	Information             string
}

var (
	bodyTags    = []string{"61", "62M", "62F", "86"}
	closingTags = []string{"64", "65", "86", "20"}
	trailerTags = []string{"86", "20"}
)

// nextTags lists which tags may follow a tag. Once the closing balance was
// seen, 86 is followed by trailerTags. A 20 after a closing tag starts the
// next message.
var nextTags = map[string][]string{
	"20":  {"21", "25"},
	"21":  {"25"},
	"25":  {"28C"},
	"28C": {"60M", "60F"},
	"60M": bodyTags,
	"60F": bodyTags,
	"61":  bodyTags,
	"86":  bodyTags,
	"62M": closingTags,
	"62F": closingTags,
	"64":  {"65", "86", "20"},
	"65":  {"65", "86", "20"},
}

// Parse parses every message in input. Each message must start with a 20
// field; a new message only starts at a 20 that follows the closing balance
// of the previous one.
func Parse(input string) ([]Message, error) {
	fields, err := ParseFields(input)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(fields) == 0 {
		return nil, errors.WithStack(&RequiredTagNotFoundError{Tag: "20"})
	}

	var messages []Message
	for start := 0; start < len(fields); {
		end := messageEnd(fields, start)
		msg, err := NewMessage(fields[start:end])
		if err != nil {
			return messages, errors.WithStack(err)
		}
		messages = append(messages, msg)
		start = end
	}
	return messages, nil
}

// messageEnd returns the index of the 20 field that starts the message after
// the one at start, or len(fields). A 20 before the closing balance stays in
// the current message so that NewMessage reports it as unexpected.
func messageEnd(fields []Field, start int) int {
	closed := false
	for i := start + 1; i < len(fields); i++ {
		switch fields[i].Tag {
		case "62M", "62F":
			closed = true
		case "20":
			if closed {
				return i
			}
		}
	}
	return len(fields)
}

var errSecondMessage = errors.New("fields hold more than one message")

// NewMessage builds a single message from its fields, checking tag order.
func NewMessage(fields []Field) (Message, error) {
	var m Message
	// infoLine is the statement line that receives the next 86 field, -1 for
	// the message itself.
	var (
		infoLine = -1
		closed   bool
		last     string
	)
	for i, f := range fields {
		if _, ok := nextTags[f.Tag]; !ok {
			return m, &UnknownTagError{Tag: f.Tag}
		}
		if i == 0 {
			if f.Tag != "20" {
				return m, &RequiredTagNotFoundError{Tag: "20"}
			}
		} else {
			expected := nextTags[last]
			if closed && last == "86" {
				expected = trailerTags
			}
			if !contains(expected, f.Tag) {
				return m, &UnexpectedTagError{Current: f.Tag, Last: last, Expected: expected}
			}
		}

		if i > 0 && f.Tag == "20" {
			return m, errSecondMessage
		}

		var err error
		switch f.Tag {
		case "20":
			m.TransactionRefNo, err = parseReference(f, maxRefLen)
		case "21":
			m.RefToRelatedMsg, err = parseReference(f, maxRefLen)
		case "25":
			m.AccountID, err = parseReference(f, maxAccountLen)
		case "28C":
			m.StatementNo, m.SequenceNo, err = parseStatementNumber(f)
		case "60M", "60F":
			m.OpeningBalance, err = parseBalance(f)
		case "61":
			var line StatementLine
			if line, err = parseStatementLine(f); err == nil {
				m.StatementLines = append(m.StatementLines, line)
				infoLine = len(m.StatementLines) - 1
			}
		case "86":
			var info string
			if info, err = parseInformation(f); err == nil {
				if infoLine >= 0 {
					appendInfo(&m.StatementLines[infoLine].Information, info)
				} else {
					appendInfo(&m.Information, info)
				}
			}
		case "62M", "62F":
			m.ClosingBalance, err = parseBalance(f)
			closed, infoLine = true, -1
		case "64":
			var b AvailableBalance
			if b, err = parseAvailableBalance(f); err == nil {
				m.ClosingAvailableBalance = &b
			}
		case "65":
			var b AvailableBalance
			if b, err = parseAvailableBalance(f); err == nil {
				m.ForwardAvailableBalance = append(m.ForwardAvailableBalance, b)
			}
		}
		if err != nil {
			return m, err
		}
		last = f.Tag
	}

	if !closed {
		return m, &RequiredTagNotFoundError{Tag: requiredAfter(last)}
	}
	return m, nil
}

// requiredAfter names the tag that is missing when a message ends after
// last.
func requiredAfter(last string) string {
	switch last {
	case "20", "21":
		return "25"
	case "25":
		return "28C"
	case "28C":
		return "60"
	default:
		return "62"
	}
}

func appendInfo(dst *string, info string) {
	if *dst == "" {
		*dst = info
		return
	}
	*dst += "\n" + info
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
