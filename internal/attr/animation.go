package attr

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockValue is a SMIL clock value (§4.4): full (h:m:s.f), partial (m:s.f),
// or a timecount with an optional metric unit.
type ClockValue struct {
	Hours, Minutes, Seconds int
	HasHours, HasMinutes    bool
	Fraction                int
	HasFraction             bool
	Metric                  string // "", "h", "min", "s", "ms" — only for timecount form
}

// ErrInvalidClockValue is returned when minutes or seconds fall outside
// [0,60), per §4.4.
var ErrInvalidClockValue = fmt.Errorf("clock value: minutes/seconds must be in [0,60)")

func (c *ClockValue) Parse(raw string) error {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		return c.parseTimecount(parts[0])
	case 2:
		minutes, err := strconv.Atoi(parts[0])
		if err != nil {
			return err
		}
		seconds, fraction, hasFraction, err := parseSecondsFraction(parts[1])
		if err != nil {
			return err
		}
		if minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
			return ErrInvalidClockValue
		}
		*c = ClockValue{Minutes: minutes, HasMinutes: true, Seconds: seconds, Fraction: fraction, HasFraction: hasFraction}
		return nil
	case 3:
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return err
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return err
		}
		seconds, fraction, hasFraction, err := parseSecondsFraction(parts[2])
		if err != nil {
			return err
		}
		if minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
			return ErrInvalidClockValue
		}
		*c = ClockValue{Hours: hours, HasHours: true, Minutes: minutes, HasMinutes: true, Seconds: seconds, Fraction: fraction, HasFraction: hasFraction}
		return nil
	default:
		return fmt.Errorf("invalid clock value %q", raw)
	}
}

func parseSecondsFraction(s string) (seconds, fraction int, hasFraction bool, err error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		seconds, err = strconv.Atoi(s[:i])
		if err != nil {
			return 0, 0, false, err
		}
		fraction, err = strconv.Atoi(s[i+1:])
		if err != nil {
			return 0, 0, false, err
		}
		return seconds, fraction, true, nil
	}
	seconds, err = strconv.Atoi(s)
	return seconds, 0, false, err
}

func (c *ClockValue) parseTimecount(s string) error {
	metric := ""
	for _, m := range []string{"ms", "min", "h", "s"} {
		if strings.HasSuffix(s, m) {
			metric, s = m, strings.TrimSuffix(s, m)
			break
		}
	}
	count, fraction, hasFraction, err := parseSecondsFraction(s)
	if err != nil {
		return fmt.Errorf("invalid timecount value: %w", err)
	}
	*c = ClockValue{Seconds: count, Fraction: fraction, HasFraction: hasFraction, Metric: metric}
	return nil
}

func (c *ClockValue) WriteAtom(sb *strings.Builder) {
	switch {
	case c.HasHours:
		fmt.Fprintf(sb, "%d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	case c.HasMinutes:
		fmt.Fprintf(sb, "%d:%02d", c.Minutes, c.Seconds)
	default:
		sb.WriteString(strconv.Itoa(c.Seconds))
	}
	if c.HasFraction {
		fmt.Fprintf(sb, ".%d", c.Fraction)
	}
	if !c.HasMinutes && !c.HasHours {
		sb.WriteString(c.Metric)
	}
}

// BeginEnd represents a `begin`/`end` timing value (§4.4): an offset, a
// syncbase/event/repeat reference, an accessKey, wallclock, or indefinite.
type BeginEnd struct {
	Kind       string // offset | syncbase | event | repeat | accesskey | wallclock | indefinite
	RefID      string
	RefKind    string // begin | end | the event name | repeat count
	RepeatN    int
	AccessKey  rune
	Wallclock  string
	Offset     ClockValue
	HasOffset  bool
	NegOffset  bool
}

func (b *BeginEnd) Parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "indefinite" {
		*b = BeginEnd{Kind: "indefinite"}
		return nil
	}
	if strings.HasPrefix(raw, "wallclock(") && strings.HasSuffix(raw, ")") {
		*b = BeginEnd{Kind: "wallclock", Wallclock: raw[len("wallclock(") : len(raw)-1]}
		return nil
	}
	if strings.HasPrefix(raw, "accessKey(") {
		end := strings.IndexByte(raw, ')')
		if end < 0 || end < len("accessKey(")+1 {
			return fmt.Errorf("invalid accessKey() value %q", raw)
		}
		ch := []rune(raw[len("accessKey(") : end])
		if len(ch) != 1 {
			return fmt.Errorf("accessKey() requires exactly one character")
		}
		rest := raw[end+1:]
		offset, hasOffset, neg, err := parseSignedOffset(rest)
		if err != nil {
			return err
		}
		*b = BeginEnd{Kind: "accesskey", AccessKey: ch[0], Offset: offset, HasOffset: hasOffset, NegOffset: neg}
		return nil
	}

	if dot := strings.IndexByte(raw, '.'); dot >= 0 {
		id := raw[:dot]
		rest := raw[dot+1:]
		switch {
		case strings.HasPrefix(rest, "begin") || strings.HasPrefix(rest, "end"):
			kind := "begin"
			tail := strings.TrimPrefix(rest, "begin")
			if strings.HasPrefix(rest, "end") {
				kind, tail = "end", strings.TrimPrefix(rest, "end")
			}
			offset, hasOffset, neg, err := parseSignedOffset(tail)
			if err != nil {
				return err
			}
			*b = BeginEnd{Kind: "syncbase", RefID: id, RefKind: kind, Offset: offset, HasOffset: hasOffset, NegOffset: neg}
			return nil
		case strings.HasPrefix(rest, "repeat("):
			close := strings.IndexByte(rest, ')')
			if close < 0 {
				return fmt.Errorf("unterminated repeat() in %q", raw)
			}
			n, err := strconv.Atoi(rest[len("repeat(") : close])
			if err != nil {
				return err
			}
			offset, hasOffset, neg, err := parseSignedOffset(rest[close+1:])
			if err != nil {
				return err
			}
			*b = BeginEnd{Kind: "repeat", RefID: id, RepeatN: n, Offset: offset, HasOffset: hasOffset, NegOffset: neg}
			return nil
		default:
			// event reference id.eventname+-offset
			name, tail := splitEventName(rest)
			offset, hasOffset, neg, err := parseSignedOffset(tail)
			if err != nil {
				return err
			}
			*b = BeginEnd{Kind: "event", RefID: id, RefKind: name, Offset: offset, HasOffset: hasOffset, NegOffset: neg}
			return nil
		}
	}

	offset, hasOffset, neg, err := parseSignedOffset(raw)
	if err != nil {
		return err
	}
	if !hasOffset {
		return fmt.Errorf("invalid begin/end value %q", raw)
	}
	*b = BeginEnd{Kind: "offset", Offset: offset, HasOffset: true, NegOffset: neg}
	return nil
}

func splitEventName(s string) (name, rest string) {
	i := 0
	for i < len(s) && s[i] != '+' && s[i] != '-' {
		i++
	}
	return s[:i], s[i:]
}

func parseSignedOffset(s string) (ClockValue, bool, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockValue{}, false, false, nil
	}
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg, s = true, s[1:]
	}
	s = strings.TrimSpace(s)
	var c ClockValue
	if err := c.Parse(s); err != nil {
		return ClockValue{}, false, false, err
	}
	return c, true, neg, nil
}

func (b *BeginEnd) WriteAtom(sb *strings.Builder) {
	switch b.Kind {
	case "indefinite":
		sb.WriteString("indefinite")
		return
	case "wallclock":
		sb.WriteString("wallclock(")
		sb.WriteString(b.Wallclock)
		sb.WriteByte(')')
		return
	case "accesskey":
		sb.WriteString("accessKey(")
		sb.WriteRune(b.AccessKey)
		sb.WriteByte(')')
		b.writeOffset(sb)
		return
	case "syncbase":
		sb.WriteString(b.RefID)
		sb.WriteByte('.')
		sb.WriteString(b.RefKind)
		b.writeOffset(sb)
		return
	case "repeat":
		sb.WriteString(b.RefID)
		sb.WriteString(".repeat(")
		sb.WriteString(strconv.Itoa(b.RepeatN))
		sb.WriteByte(')')
		b.writeOffset(sb)
		return
	case "event":
		sb.WriteString(b.RefID)
		sb.WriteByte('.')
		sb.WriteString(b.RefKind)
		b.writeOffset(sb)
		return
	default: // offset
		b.writeOffset(sb)
	}
}

func (b *BeginEnd) writeOffset(sb *strings.Builder) {
	if !b.HasOffset {
		return
	}
	if b.NegOffset {
		sb.WriteByte('-')
	} else if b.Kind != "offset" {
		sb.WriteByte('+')
	}
	b.Offset.WriteAtom(sb)
}
