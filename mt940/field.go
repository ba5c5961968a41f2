package mt940

import "strings"

// Field is a single ":TAG:value" entry. Multi-line values are joined with
// "\n".
type Field struct {
	Tag   string
	Value string
}

// ParseFields splits input into fields. Both "\r\n" and "\n" line endings
// are accepted. Blank lines are skipped, and so is a "-" message trailer
// that is followed by a new field or the end of input.
func ParseFields(input string) ([]Field, error) {
	var fields []Field
	// trailer holds a "-" line until the next line shows whether it ended a
	// message or belongs to a multi-line value.
	var trailer string
	lineNo := 0
	for len(input) > 0 {
		var line string
		if i := strings.IndexByte(input, '\n'); i >= 0 {
			line, input = input[:i], input[i+1:]
		} else {
			line, input = input, ""
		}
		lineNo++
		line = strings.TrimRight(line, " \t\r")

		if tag, value, ok := cutTag(line); ok {
			fields = append(fields, Field{Tag: tag, Value: value})
			trailer = ""
			continue
		}
		if line == "" {
			continue
		}
		if (line == "-" || line == "-}") && trailer == "" {
			trailer = line
			continue
		}
		if len(fields) == 0 {
			return nil, &SyntaxError{Line: lineNo, Text: line}
		}
		last := &fields[len(fields)-1]
		if trailer != "" {
			last.Value += "\n" + trailer
			trailer = ""
		}
		last.Value += "\n" + line
	}
	return fields, nil
}

// cutTag splits ":TAG:value". TAG is two digits and an optional upper case
// letter.
func cutTag(line string) (tag, value string, ok bool) {
	if len(line) < 4 || line[0] != ':' || !isDigit(line[1]) || !isDigit(line[2]) {
		return "", "", false
	}
	switch {
	case line[3] == ':':
		return line[1:3], line[4:], true
	case len(line) >= 5 && isUpper(line[3]) && line[4] == ':':
		return line[1:4], line[5:], true
	}
	return "", "", false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isAlpha(c byte) bool { return isUpper(c) || (c >= 'a' && c <= 'z') }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
