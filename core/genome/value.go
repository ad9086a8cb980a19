// core/genome/value.go
package genome

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	NumberValue ValueKind = iota
	TextValue
)

// Value is a tagged number-or-text variant. Diagnostics records annotate
// windows and reads with heterogeneous lists of these; a single tagged type
// replaces per-type setter overloads.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
}

// NumberOf wraps f as a Value.
func NumberOf(f float64) Value { return Value{Kind: NumberValue, Number: f} }

// TextOf wraps s as a Value.
func TextOf(s string) Value { return Value{Kind: TextValue, Text: s} }

// Annotations is a generic key to value-list map. Any existing binding for a
// key is overwritten by Set.
type Annotations map[string][]Value

// Set binds key to values, replacing any previous binding.
func (a Annotations) Set(key string, values ...Value) {
	a[key] = append([]Value(nil), values...)
}

// Numbers returns the numeric payloads bound to key, in order.
func (a Annotations) Numbers(key string) []float64 {
	vals := a[key]
	if len(vals) == 0 {
		return nil
	}
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v.Kind == NumberValue {
			out = append(out, v.Number)
		}
	}
	return out
}

// Texts returns the text payloads bound to key, in order.
func (a Annotations) Texts(key string) []string {
	vals := a[key]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v.Kind == TextValue {
			out = append(out, v.Text)
		}
	}
	return out
}
