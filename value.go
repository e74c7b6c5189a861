package jsonpath

import "github.com/cybergodev/jsonpath/internal/jvalue"

// Value is the engine's JSON value representation: a tagged union over
// null, bool, int, float, string, array and object, with objects
// preserving insertion order. It is a thin re-export of internal/jvalue's
// type so external callers never need to import an internal package.
type Value = jvalue.Value

// FromAny converts the output of encoding/json.Unmarshal into a Value.
func FromAny(v any) Value { return jvalue.FromAny(v) }

// ToAny converts a Value back into the plain any shape
// encoding/json.Marshal expects.
func ToAny(v Value) any { return jvalue.ToAny(v) }

func NullValue() Value           { return jvalue.Null() }
func BoolValue(b bool) Value     { return jvalue.Bool(b) }
func IntValue(i int64) Value     { return jvalue.Int(i) }
func FloatValue(f float64) Value { return jvalue.Float(f) }
func StringValue(s string) Value { return jvalue.String(s) }
