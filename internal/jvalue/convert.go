package jvalue

// FromAny converts the output of encoding/json.Unmarshal (nil, bool,
// float64, string, []any, map[string]any) into a Value tree. Decoding a
// JSON document is the caller's job; this is only the boundary adapter so
// the engine never touches an unordered map[string]any directly.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case float64:
		if t == float64(int64(t)) {
			return Int(int64(t))
		}
		return Float(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case string:
		return String(t)
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			arr[i] = FromAny(e)
		}
		return Array(arr...)
	case map[string]any:
		m := NewOrderedMap()
		for k, e := range t {
			m.Set(k, FromAny(e))
		}
		return Object(m)
	case Value:
		return t
	default:
		return Null()
	}
}

// ToAny converts a Value tree back into the plain any shape
// (map[string]any/[]any/...) that encoding/json.Marshal expects.
func ToAny(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.B
	case KindInt:
		return v.I
	case KindFloat:
		return v.F
	case KindString:
		return v.S
	case KindArray:
		out := make([]any, len(v.Arr))
		for i, e := range v.Arr {
			out[i] = ToAny(e)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Obj.Len())
		for _, k := range v.Obj.Keys() {
			e, _ := v.Obj.Get(k)
			out[k] = ToAny(e)
		}
		return out
	default:
		return nil
	}
}
