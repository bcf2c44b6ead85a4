package itinerary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/tripweaver/internal/domain"
)

// Value is a parsed top-level JSON value as seen by the extraction
// strategies. Object fields keep their document order.
type Value struct {
	IsArray  bool
	IsObject bool
	Elements []json.RawMessage
	Fields   []Field
}

// Field is one key of a top-level JSON object.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Strategy locates the day array inside a parsed completion.
type Strategy interface {
	Name() string
	// Extract returns the array it found and true, or false when the value
	// does not have the shape this strategy handles.
	Extract(v Value) ([]json.RawMessage, bool)
}

// BareArray matches a top-level array.
type BareArray struct{}

func (BareArray) Name() string { return "bare_array" }

func (BareArray) Extract(v Value) ([]json.RawMessage, bool) {
	if !v.IsArray {
		return nil, false
	}
	return v.Elements, true
}

// WrappedUnderKey matches an object whose Key field holds an array.
type WrappedUnderKey struct {
	Key string
}

func (w WrappedUnderKey) Name() string { return "wrapped_under_" + w.Key }

func (w WrappedUnderKey) Extract(v Value) ([]json.RawMessage, bool) {
	for _, f := range v.Fields {
		if f.Key == w.Key {
			return arrayOf(f.Value)
		}
	}
	return nil, false
}

// FirstArrayValuedField matches the first object field, in document order,
// whose value is an array.
type FirstArrayValuedField struct{}

func (FirstArrayValuedField) Name() string { return "first_array_field" }

func (FirstArrayValuedField) Extract(v Value) ([]json.RawMessage, bool) {
	for _, f := range v.Fields {
		if elems, ok := arrayOf(f.Value); ok {
			return elems, true
		}
	}
	return nil, false
}

// DefaultStrategies is the order in which Normalize looks for the day array.
var DefaultStrategies = []Strategy{
	BareArray{},
	WrappedUnderKey{Key: "itinerary"},
	WrappedUnderKey{Key: "days"},
	FirstArrayValuedField{},
}

// Normalize turns a raw completion into itinerary days using DefaultStrategies.
func Normalize(raw string) ([]domain.ItineraryDay, error) {
	return NormalizeWith(raw, DefaultStrategies)
}

// NormalizeWith is Normalize with an explicit strategy list. The first
// strategy that finds an array wins, even when that array is empty. When the
// completion is not JSON as a whole, embedded candidates are tried in order
// and the first one holding an array of objects is used.
func NormalizeWith(raw string, strategies []Strategy) ([]domain.ItineraryDay, error) {
	cands, err := parseCandidates(raw)
	if err != nil {
		return nil, err
	}

	elems, found := extract(cands[0], strategies)
	for _, v := range cands {
		if e, ok := extract(v, strategies); ok && holdsObjects(e) {
			elems, found = e, true
			break
		}
	}
	if !found {
		return nil, &Error{Kind: KindShape, Err: errors.New("no array of days in completion")}
	}
	if len(elems) == 0 {
		return nil, &Error{Kind: KindShape, Err: errors.New("completion holds an empty array")}
	}

	days := make([]domain.ItineraryDay, 0, len(elems))
	for i, el := range elems {
		d, err := decodeDay(el)
		if err != nil {
			return nil, &Error{Kind: KindShape, Err: fmt.Errorf("day %d: %w", i, err)}
		}
		days = append(days, d)
	}
	fillDayNumbers(days)
	return days, nil
}

func extract(v Value, strategies []Strategy) ([]json.RawMessage, bool) {
	for _, s := range strategies {
		if elems, ok := s.Extract(v); ok {
			return elems, true
		}
	}
	return nil, false
}

func holdsObjects(elems []json.RawMessage) bool {
	if len(elems) == 0 {
		return false
	}
	for _, el := range elems {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '{' {
			return false
		}
	}
	return true
}

// fillDayNumbers gives days without a positive day number their position,
// or the next number above the highest one in use when the position is taken.
// Numbers stay unique unless the model itself repeated one.
func fillDayNumbers(days []domain.ItineraryDay) {
	used := make(map[int]bool, len(days))
	highest := 0
	for _, d := range days {
		if d.DayNumber > 0 {
			used[d.DayNumber] = true
			highest = max(highest, d.DayNumber)
		}
	}
	for i := range days {
		if days[i].DayNumber > 0 {
			continue
		}
		n := i + 1
		if used[n] {
			highest++
			n = highest
		}
		used[n] = true
		highest = max(highest, n)
		days[i].DayNumber = n
	}
}

// ParseValue parses raw strictly and, when that fails, falls back to the
// first balanced JSON array or object embedded in it (prose, markdown fences).
func ParseValue(raw string) (Value, error) {
	cands, err := parseCandidates(raw)
	if err != nil {
		return Value{}, err
	}
	return cands[0], nil
}

// parseCandidates returns raw itself when it is valid JSON, otherwise every
// balanced, valid JSON array or object embedded in it, in order. The result
// is never empty when err is nil.
func parseCandidates(raw string) ([]Value, error) {
	text := strings.TrimSpace(raw)
	if json.Valid([]byte(text)) {
		v, err := toValue([]byte(text))
		if err != nil {
			return nil, err
		}
		return []Value{v}, nil
	}
	var cands []Value
	for start := 0; start < len(text); {
		i := strings.IndexAny(text[start:], "[{")
		if i < 0 {
			break
		}
		i += start
		start = i + 1
		end, ok := balancedEnd(text, i)
		if !ok {
			continue
		}
		cand := []byte(text[i:end])
		if !json.Valid(cand) {
			continue
		}
		v, err := toValue(cand)
		if err != nil {
			continue
		}
		cands = append(cands, v)
		start = end
	}
	if len(cands) == 0 {
		return nil, &Error{Kind: KindParse, Err: errors.New("no JSON value found in completion")}
	}
	return cands, nil
}

// balancedEnd returns the index just past the bracket that closes the one at
// text[open]. Brackets inside JSON strings are ignored.
func balancedEnd(text string, open int) (int, bool) {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func toValue(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Value{}, &Error{Kind: KindParse, Err: errors.New("empty completion")}
	}
	switch data[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return Value{}, &Error{Kind: KindParse, Err: err}
		}
		return Value{IsArray: true, Elements: elems}, nil
	case '{':
		fields, err := orderedFields(data)
		if err != nil {
			return Value{}, &Error{Kind: KindParse, Err: err}
		}
		return Value{IsObject: true, Fields: fields}, nil
	}
	// A scalar parses but can never hold days.
	return Value{}, nil
}

func orderedFields(data []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Value: val})
	}
	return fields, nil
}

func arrayOf(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// looseString accepts strings, numbers and booleans. Models often emit
// "cost": 20 where a string was asked for.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = looseString(str)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return fmt.Errorf("expected a string, got %s", b[:1])
	default:
		*s = looseString(b)
	}
	return nil
}

// looseInt accepts numbers and numeric strings.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("day_number %s is not a number", b)
	}
	*n = looseInt(f)
	return nil
}

type rawActivity struct {
	Time        looseString `json:"time"`
	Title       looseString `json:"title"`
	Description looseString `json:"description"`
	Location    looseString `json:"location"`
	Cost        looseString `json:"cost"`
	Duration    looseString `json:"duration"`
	Tips        looseString `json:"tips"`
}

type rawDay struct {
	DayNumber  looseInt      `json:"day_number"`
	Title      looseString   `json:"title"`
	Activities []rawActivity `json:"activities"`
}

func decodeDay(el json.RawMessage) (domain.ItineraryDay, error) {
	el = bytes.TrimSpace(el)
	if len(el) == 0 || el[0] != '{' {
		return domain.ItineraryDay{}, errors.New("element is not an object")
	}
	var rd rawDay
	if err := json.Unmarshal(el, &rd); err != nil {
		return domain.ItineraryDay{}, err
	}
	day := domain.ItineraryDay{
		DayNumber:  int(rd.DayNumber),
		Title:      string(rd.Title),
		Activities: make([]domain.ItineraryActivity, 0, len(rd.Activities)),
	}
	for _, a := range rd.Activities {
		day.Activities = append(day.Activities, domain.ItineraryActivity{
			Time:        string(a.Time),
			Title:       string(a.Title),
			Description: string(a.Description),
			Location:    string(a.Location),
			Cost:        string(a.Cost),
			Duration:    string(a.Duration),
			Tips:        string(a.Tips),
		})
	}
	return day, nil
}
