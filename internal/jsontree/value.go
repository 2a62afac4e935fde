// Package jsontree models a parsed JSON document as a closed tagged union so
// that vendor responses of unknown shape can be walked without reflection.
// Object members keep their document order.
package jsontree

// Kind identifies which variant a Value holds
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the lowercase JSON name of the kind
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Member is a single key/value entry of an object
type Member struct {
	Key   string
	Value Value
}

// Value is one node of a parsed JSON document. The zero Value is null.
type Value struct {
	kind  Kind
	text  string // string contents, or the number literal
	flag  bool
	items []Value
	pairs []Member
}

// NullValue returns a null node
func NullValue() Value { return Value{} }

// BoolValue returns a boolean node
func BoolValue(b bool) Value { return Value{kind: Bool, flag: b} }

// NumberValue returns a number node holding the literal as written
func NumberValue(literal string) Value { return Value{kind: Number, text: literal} }

// StringValue returns a string node
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns an array node
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

// ObjectValue returns an object node with members in the given order
func ObjectValue(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: Object, pairs: members}
}

// Kind reports the variant of v
func (v Value) Kind() Kind { return v.kind }

// IsObject reports whether v is an object
func (v Value) IsObject() bool { return v.kind == Object }

// IsArray reports whether v is an array
func (v Value) IsArray() bool { return v.kind == Array }

// Str returns the contents of a string node
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.text, true
}

// Literal returns the number literal of a number node
func (v Value) Literal() (string, bool) {
	if v.kind != Number {
		return "", false
	}
	return v.text, true
}

// Boolean returns the value of a bool node
func (v Value) Boolean() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.flag, true
}

// Elements returns the items of an array node. The slice must not be modified.
func (v Value) Elements() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Members returns the entries of an object node in document order.
// The slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.pairs
}

// Clone returns a deep copy of v sharing no slices with the original
func (v Value) Clone() Value {
	switch v.kind {
	case Array:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Value{kind: Array, items: items}
	case Object:
		pairs := make([]Member, len(v.pairs))
		for i, m := range v.pairs {
			pairs[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
		return Value{kind: Object, pairs: pairs}
	default:
		return v
	}
}
