package rtc

// HostObject is a dynamically-typed object handed across the host boundary.
// Embedding hosts deliver loosely-typed maps (JSON-decoded values, script
// engine exports); this layer reads individual fields from them with
// explicit presence checks and never mutates them.
type HostObject map[string]any

// stringField returns the string value for key and whether it was present
// with a string kind. A present field of any other kind counts as absent.
func stringField(obj HostObject, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// uint16Field reads a numeric field. Hosts deliver numbers as whatever kind
// their decoder produces (float64 from JSON decoders, int from script
// engines), so every integer kind is accepted. Out-of-range or fractional
// values count as absent.
func uint16Field(obj HostObject, key string) (uint16, bool) {
	v, ok := obj[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case uint16:
		return n, true
	case int:
		if n >= 0 && n <= 0xffff {
			return uint16(n), true
		}
	case int32:
		if n >= 0 && n <= 0xffff {
			return uint16(n), true
		}
	case int64:
		if n >= 0 && n <= 0xffff {
			return uint16(n), true
		}
	case uint:
		if n <= 0xffff {
			return uint16(n), true
		}
	case uint32:
		if n <= 0xffff {
			return uint16(n), true
		}
	case uint64:
		if n <= 0xffff {
			return uint16(n), true
		}
	case float32:
		f := float64(n)
		if f >= 0 && f <= 0xffff && f == float64(uint16(f)) {
			return uint16(f), true
		}
	case float64:
		if n >= 0 && n <= 0xffff && n == float64(uint16(n)) {
			return uint16(n), true
		}
	}
	return 0, false
}

// asHostObject converts a dynamically-typed value to a HostObject. Nested
// objects arrive either as HostObject or as plain maps depending on the
// decoder that produced them.
func asHostObject(v any) (HostObject, bool) {
	switch obj := v.(type) {
	case HostObject:
		return obj, true
	case map[string]any:
		return obj, true
	}
	return nil, false
}
