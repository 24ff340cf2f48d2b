// Package inline renders PAGE custom inline annotations over a line of text
// into an ordered markup node sequence. The package is pure: it performs no
// I/O, holds no state between calls and never fails - malformed annotation
// data degrades to plain text.
package inline

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Annotation kinds understood by the renderer. Anything else is rendered
// through the generic fallback shape.
const (
	KindAbbrev      = "abbrev"
	KindSic         = "sic"
	KindRegularised = "regularised"
	KindNum         = "num"
	KindPerson      = "person"
	KindPlace       = "place"
	KindRef         = "ref"
	KindUnclear     = "unclear"
	KindTextStyle   = "textStyle"

	// KindReadingOrder is not rendered at all, PAGE uses it to order regions
	// and lines. It is parsed like everything else so callers can pick the
	// index up from span attributes.
	KindReadingOrder = "readingOrder"
)

// Attr is a single named annotation attribute. Span attributes are kept as an
// ordered list so output is deterministic and unknown keys survive round
// trips into the generic fallback shape.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered string-to-string attribute bag.
type Attrs []Attr

// Get returns the value for key and whether it was present.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Value returns the value for key or empty string.
func (a Attrs) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Has reports whether key is present.
func (a Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Set replaces the value for key keeping its position, or appends a new
// attribute when key is not present yet.
func (a Attrs) Set(key, value string) Attrs {
	for i := range a {
		if a[i].Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Key: key, Value: value})
}

// Span is a single typed annotation over a half-open rune range
// [Offset, Offset+Length) of a line's text.
type Span struct {
	Kind   string
	Offset int
	Length int
	Attrs  Attrs
}

// End returns the exclusive end of the span interval.
func (s Span) End() int { return s.Offset + s.Length }

// Empty reports whether the span covers no text. Empty spans are inert and
// excluded from rendering.
func (s Span) Empty() bool { return s.Length <= 0 }

// Style reports whether this is a character-styling span. Style spans
// decorate leaf text runs and never participate in wrapper nesting.
func (s Span) Style() bool { return s.Kind == KindTextStyle }

// Overlaps reports whether two spans have a non-empty interval intersection.
func (s Span) Overlaps(o Span) bool {
	return max(s.Offset, o.Offset) < min(s.End(), o.End())
}

// Contains reports whether s's interval fully contains o's.
func (s Span) Contains(o Span) bool {
	return s.Offset <= o.Offset && s.End() >= o.End()
}

// Class partitions annotation kinds for the containment tie-break: when two
// spans share an identical interval the lower class becomes the outer
// wrapper, so semantic entities never end up nested inside a choice.
type Class int

const (
	// ClassEntity - semantic references: person, place, ref, unclear.
	ClassEntity Class = iota
	// ClassValue - alternation pairs and values: abbrev, sic, regularised, num.
	ClassValue
	// ClassOther - everything else, including unknown kinds.
	ClassOther
)

// ClassOf returns the tie-break class for an annotation kind.
func ClassOf(kind string) Class {
	switch kind {
	case KindPerson, KindPlace, KindRef, KindUnclear:
		return ClassEntity
	case KindAbbrev, KindSic, KindRegularised, KindNum:
		return ClassValue
	default:
		return ClassOther
	}
}

// Alternation reports whether the kind renders as an alternation pair.
func Alternation(kind string) bool {
	return kind == KindAbbrev || kind == KindSic || kind == KindRegularised
}

var (
	tokenRe = regexp.MustCompile(`(\w+)\s*\{([^}]*)\}`)
	pairRe  = regexp.MustCompile(`(\w+)\s*:\s*([^;]+);`)
)

// boolishKeys are normalized to canonical "true"/"false" strings no matter
// how the upstream tool spells them.
var boolishKeys = []string{"bold", "italic", "underline", "superscript", "subscript", "continued"}

// ParseAnnotations parses a raw PAGE @custom string like
//
//	readingOrder {index:3;} abbrev {offset:9;length:2;expansion:...;}
//
// into typed spans. Parsing never fails: malformed numeric fields default to
// zero and unknown kinds are preserved verbatim with all their attributes so
// nothing is silently dropped.
func ParseAnnotations(custom string, log *zap.Logger) []Span {
	if strings.TrimSpace(custom) == "" {
		return nil
	}

	var spans []Span
	for _, m := range tokenRe.FindAllStringSubmatch(custom, -1) {
		span := Span{Kind: m[1]}
		for _, kv := range pairRe.FindAllStringSubmatch(m[2], -1) {
			key, value := kv[1], strings.TrimSpace(kv[2])
			switch key {
			case "offset":
				span.Offset = parseInt(value, span.Kind, key, log)
			case "length":
				span.Length = parseInt(value, span.Kind, key, log)
			default:
				span.Attrs = span.Attrs.Set(key, value)
			}
		}
		for _, key := range boolishKeys {
			if v, ok := span.Attrs.Get(key); ok {
				span.Attrs = span.Attrs.Set(key, strconv.FormatBool(parseBool(v)))
			}
		}
		spans = append(spans, span)
	}
	return spans
}

func parseInt(raw, kind, key string, log *zap.Logger) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Debug("Malformed numeric annotation field, using zero",
				zap.String("kind", kind), zap.String("key", key), zap.String("raw", raw))
		}
		return 0
	}
	return v
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
