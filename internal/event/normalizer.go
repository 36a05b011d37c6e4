package event

import (
	"fmt"
	"time"
)

// Field names of the canonical record.
const (
	FieldID             = "id"
	FieldEventName      = "event_name"
	FieldLocation       = "location"
	FieldDescription    = "description"
	FieldTime           = "time"
	FieldDate           = "date"
	FieldLanguage       = "language"
	FieldHyperlink      = "hyperlink"
	FieldTransportation = "transportation"
	FieldCategory       = "category"
	FieldSpeakers       = "speakers"
	FieldVIPs           = "vips"
)

// Normalizer converts raw table items into canonical Records.
// It holds no per-record state; the clock only feeds timestamp ids.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// WithClock replaces the clock used for timestamp-based ids.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// GenerateID is GenerateID bound to the normalizer clock.
func (n *Normalizer) GenerateID(date string, seq int) string {
	return generateID(date, seq, n.now())
}

// NeedsID reports whether the item's id is missing, empty or the "N/A"
// placeholder, in which case Normalize synthesizes one.
func NeedsID(item map[string]any) bool {
	id := Lookup(item, FieldID)
	if !id.Truthy() {
		return true
	}
	s, ok := id.Str()
	return ok && s == MissingID
}

// Normalize converts item into a canonical Record. Every field degrades to
// its default independently; Normalize never fails for a non-nil map.
func (n *Normalizer) Normalize(item map[string]any) Record {
	return n.NormalizeWithSequence(item, 1)
}

// NormalizeWithSequence is Normalize with the sequence number used when an
// id has to be synthesized.
func (n *Normalizer) NormalizeWithSequence(item map[string]any, seq int) Record {
	rec := Record{
		ID:          n.resolveID(item, seq),
		EventName:   requiredBilingual(item, FieldEventName),
		Location:    requiredBilingual(item, FieldLocation),
		Description: requiredBilingual(item, FieldDescription),
		Time:        requiredBilingual(item, FieldTime),
		Date:        simpleString(item, FieldDate),
		Language:    simpleString(item, FieldLanguage),
		Hyperlink:   simpleString(item, FieldHyperlink),
		Category:    NormalizeCategory(Lookup(item, FieldCategory)),
		Speakers:    RepairSpeakers(Lookup(item, FieldSpeakers)),
		VIPs:        RepairVIPs(Lookup(item, FieldVIPs)),
	}

	if tv := Lookup(item, FieldTransportation); tv.Truthy() {
		t := CoerceBilingual(tv, "")
		rec.Transportation = &t
	}

	return rec
}

// NormalizeAny normalizes a value of unknown shape. Only mappings are
// records; anything else is rejected.
func (n *Normalizer) NormalizeAny(v any) (Record, error) {
	m, ok := ValueOf(v).Map()
	if !ok {
		return Record{}, fmt.Errorf("event item must be a mapping, got %s", ValueOf(v).Kind())
	}
	return n.Normalize(m), nil
}

func (n *Normalizer) resolveID(item map[string]any, seq int) string {
	if !NeedsID(item) {
		return Lookup(item, FieldID).String()
	}

	date := Lookup(item, FieldDate)
	if !date.Present() {
		return timestampID(max(seq, 1), n.now())
	}
	// A non-string date cannot parse and takes the timestamp branch.
	s, _ := date.Str()
	return n.GenerateID(s, seq)
}

// MissingPlaceholder is the text stored for an absent required field.
func MissingPlaceholder(field string) Bilingual {
	return Bilingual{
		En: "Missing " + field,
		Zh: "缺少" + field,
	}
}

func requiredBilingual(item map[string]any, field string) Bilingual {
	v := Lookup(item, field)
	if !v.Present() {
		return MissingPlaceholder(field)
	}
	return CoerceBilingual(v, "")
}

func simpleString(item map[string]any, field string) string {
	v := Lookup(item, field)
	if !v.Truthy() {
		return ""
	}
	return v.String()
}

// NormalizeCategory turns the category field into a list of strings.
func NormalizeCategory(v Value) []string {
	switch v.Kind() {
	case KindList:
		elems, _ := v.List()
		out := make([]string, 0, len(elems))
		for _, e := range elems {
			out = append(out, stringify(e))
		}
		return out
	case KindString:
		s, _ := v.Str()
		return []string{s}
	case KindAbsent, KindNull, KindMap, KindOther:
		return []string{}
	}
	return []string{}
}
