package datetime

import (
	"strings"

	"task-tracker/internal/clock"
	apperrors "task-tracker/internal/errors"
	"task-tracker/internal/logging"
)

// strategy is one accepted input shape. resolve reports matched=false when
// the input is not of its shape. A non-nil error with matched=true is final.
// A non-nil error with matched=false is a hint: later strategies still run,
// and the hint is returned only if none of them match.
type strategy struct {
	name    string
	resolve func(in expr, now Timestamp) (ts Timestamp, matched bool, err error)
}

// expr is the trimmed input plus a lowercased, whitespace-collapsed copy
// used by the natural-language strategies.
type expr struct {
	raw   string
	lower string
}

func newExpr(text string) expr {
	raw := strings.TrimSpace(text)
	return expr{
		raw:   raw,
		lower: strings.ToLower(strings.Join(strings.Fields(raw), " ")),
	}
}

// strategies in precedence order. The first match wins.
var strategies = []strategy{
	{name: "keyword", resolve: resolveKeyword},
	{name: "relative offset", resolve: resolveRelative},
	{name: "weekday", resolve: resolveWeekday},
	{name: "date with time of day", resolve: resolveCompound},
	{name: "iso date", resolve: resolveISODate},
	{name: "slash date with time", resolve: resolveSlashDateTime},
	{name: "slash date", resolve: resolveSlashDate},
	{name: "24h time", resolve: resolveBareTime},
	{name: "12h time", resolve: resolveBareClockTime},
}

// Parse resolves text relative to now.
func Parse(text string, now Timestamp) (Timestamp, error) {
	in := newExpr(text)
	if in.raw == "" {
		return Timestamp{}, apperrors.NewEmptyInputError()
	}

	var hint error
	for _, s := range strategies {
		ts, matched, err := s.resolve(in, now)
		if !matched {
			if err != nil && hint == nil {
				hint = err
			}
			continue
		}
		if err != nil {
			return Timestamp{}, err
		}
		logging.Debugf("datetime: %q resolved by %s strategy to %s", in.raw, s.name, FormatISO(ts))
		return ts, nil
	}

	if hint != nil {
		return Timestamp{}, hint
	}
	return Timestamp{}, apperrors.NewUnsupportedFormatError(in.raw)
}

// Parser binds Parse to a clock so callers need not thread "now" through.
type Parser struct {
	clock clock.Clock
}

func NewParser(c clock.Clock) *Parser {
	if c == nil {
		c = clock.System{}
	}
	return &Parser{clock: c}
}

// ParseDateTime reads the clock once and parses text against it.
func (p *Parser) ParseDateTime(text string) (Timestamp, error) {
	return Parse(text, Now(p.clock))
}

// Now returns the parser's current time at minute precision.
func (p *Parser) Now() Timestamp {
	return Now(p.clock)
}
