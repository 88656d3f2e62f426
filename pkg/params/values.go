package params

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ActionKey is the parameter carrying the operation name.
const ActionKey = "Action"

// NextTokenKey is the parameter carrying a pagination cursor.
const NextTokenKey = "NextToken"

// TimeLayout is the ISO-8601 layout used for every date parameter. Fractional
// seconds are truncated to microseconds with trailing zeros trimmed, and UTC
// prints as Z.
const TimeLayout = "2006-01-02T15:04:05.999999Z07:00"

// Values is a request parameter dictionary. The setters never store an empty
// value, so a Values built with them only holds parameters that will be sent.
type Values map[string]string

// New returns a dictionary for the given action.
func New(action string) Values {
	return Values{ActionKey: action}
}

// Action returns the operation name, or "" if none is set.
func (v Values) Action() string {
	return v[ActionKey]
}

// Set stores value under key, skipping empty strings.
func (v Values) Set(key, value string) {
	if value == "" {
		return
	}
	v[key] = value
}

// SetTime stores t in ISO-8601 form, skipping the zero time.
func (v Values) SetTime(key string, t time.Time) {
	if t.IsZero() {
		return
	}
	v[key] = FormatTime(t)
}

// SetBool stores "true" or "false" when b is non-nil.
func (v Values) SetBool(key string, b *bool) {
	if b == nil {
		return
	}
	v[key] = FormatBool(*b)
}

// SetInt stores n in base 10, skipping zero.
func (v Values) SetInt(key string, n int) {
	if n == 0 {
		return
	}
	v[key] = strconv.Itoa(n)
}

// SetDecimal stores d in its canonical decimal form. Zero amounts are kept
// because a zero charge is a meaningful value.
func (v Values) SetDecimal(key string, d decimal.Decimal) {
	v[key] = d.String()
}

// Merge copies every entry of others into v and returns v.
func (v Values) Merge(others ...Values) Values {
	for _, o := range others {
		maps.Copy(v, o)
	}
	return v
}

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	return maps.Clone(v)
}

// Validate fails with a ValidationError naming the first key, in sorted
// order, whose value is empty. Setters never store one, but Enumerate keeps
// every element so a list with a blank entry is caught here.
func (v Values) Validate() error {
	for _, k := range v.Keys() {
		if v[k] == "" {
			return &ValidationError{Field: k, Reason: "value is empty"}
		}
	}
	return nil
}

// Keys returns the parameter names in sorted order.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Encode renders v as a canonical query string: keys sorted by byte value,
// keys and values percent-encoded per RFC 3986. This is the form MWS
// signs, so it must not be produced with url.Values.Encode, which encodes
// spaces as "+".
func (v Values) Encode() string {
	var b strings.Builder
	for i, k := range v.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Escape(k))
		b.WriteByte('=')
		b.WriteString(Escape(v[k]))
	}
	return b.String()
}

// FormatTime renders t as ISO-8601.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatBool renders b as the lower-case literal MWS accepts.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes s leaving only the RFC 3986 unreserved set
// (A-Z a-z 0-9 - _ . ~) as is.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := range len(s) {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}

// LogValue renders v as a group of its parameters in key order, so a
// handler's ReplaceAttr sees each parameter.
func (v Values) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(v))
	for _, k := range v.Keys() {
		attrs = append(attrs, slog.String(k, v[k]))
	}
	return slog.GroupValue(attrs...)
}
