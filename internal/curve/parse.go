package curve

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"pumpsizer/internal/domain"
)

// Diagnostic describes one skipped input line.
type Diagnostic struct {
	Line int // 1-based
	Text string
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d %q: %v", d.Line, d.Text, d.Err)
}

// MarshalText lets diagnostics travel as plain strings in JSON.
func (d Diagnostic) MarshalText() ([]byte, error) { return []byte(d.Error()), nil }

// Parse reads one flow/head pair per line. Blank lines and lines starting
// with '#' are ignored. Points are returned normalized; malformed lines are
// skipped and reported.
func Parse(text string) ([]domain.CurvePoint, []Diagnostic) {
	var (
		points []domain.CurvePoint
		diags  []Diagnostic
	)
	for i, raw := range strings.Split(text, "\n") {
		n := i + 1
		raw = strings.TrimSuffix(raw, "\r")
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := parsePair(line)
		if err != nil {
			diags = append(diags, Diagnostic{Line: n, Text: raw, Err: err})
			continue
		}
		points = append(points, p)
	}
	return Normalize(points), diags
}

// ParseLine parses a single "flow, head" pair.
func ParseLine(line string) (domain.CurvePoint, error) {
	return parsePair(strings.TrimSpace(line))
}

func parsePair(line string) (domain.CurvePoint, error) {
	fields := strings.FieldsFunc(line, isSeparator)
	if len(fields) != 2 {
		return domain.CurvePoint{}, ErrFieldCount
	}
	flow, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return domain.CurvePoint{}, ErrNotNumeric
	}
	head, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return domain.CurvePoint{}, ErrNotNumeric
	}
	p := domain.CurvePoint{Flow: flow, Head: head}
	if !validPoint(p) {
		return domain.CurvePoint{}, ErrOutOfRange
	}
	return p, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

// Format renders points as "flow, head" lines readable by Parse.
func Format(points []domain.CurvePoint) string {
	var b strings.Builder
	for _, p := range points {
		b.WriteString(strconv.FormatFloat(p.Flow, 'f', -1, 64))
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(p.Head, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

// BuildLine parses text into an RpmLine. It fails with ErrTooFewPoints when
// fewer than two valid points remain; diagnostics are returned either way.
func BuildLine(rpm float64, label, text string) (domain.RpmLine, []Diagnostic, error) {
	points, diags := Parse(text)
	line := domain.RpmLine{RPM: rpm, Label: label, Points: points}
	if !Usable(points) {
		return line, diags, ErrTooFewPoints
	}
	return line, diags, nil
}
