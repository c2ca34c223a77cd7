package prefstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tailscale/hujson"
)

// parseDocument parses a JSON document into a Value tree, preserving
// object member insertion order. Input is standardized through hujson
// first, so defaults documents may carry comments and trailing commas.
// Blank input parses to the null value (an empty document).
func parseDocument(text []byte) (Value, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return Null(), nil
	}
	std, err := hujson.Standardize(text)
	if err != nil {
		return Null(), fmt.Errorf("standardize document: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Null(), fmt.Errorf("parse document: %w", err)
	}
	// Reject trailing garbage after the top-level value.
	if _, err := dec.Token(); err == nil {
		return Null(), fmt.Errorf("parse document: trailing data after top-level value")
	}
	return v, nil
}

// decodeValue consumes one JSON value from the decoder.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return numberValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Null(), fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		return Null(), fmt.Errorf("unexpected token %v", tok)
	}
}

// decodeObject consumes members until the closing brace. A duplicate
// key replaces the earlier member, keeping keys unique.
func decodeObject(dec *json.Decoder) (Value, error) {
	obj := ObjectValue()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Null(), err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Null(), fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Null(), err
		}
		obj.setMember(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Null(), err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var elems []Value
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Null(), err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Null(), err
	}
	return ArrayValue(elems...), nil
}

// numberValue maps a JSON number onto the narrowest matching kind:
// int64 when it fits, uint64 for larger integers, double otherwise.
func numberValue(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return Int64Value(i)
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return Uint64Value(u)
	}
	f, _ := n.Float64()
	return DoubleValue(f)
}

// serializeDocument emits a compact JSON rendering of the value.
// Object members appear in insertion order, so output is stable.
func serializeDocument(v Value) []byte {
	return appendValue(nil, v)
}

func appendValue(dst []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		return strconv.AppendBool(dst, v.b)
	case KindInt, KindInt64:
		return strconv.AppendInt(dst, v.i, 10)
	case KindUint, KindUint64:
		return strconv.AppendUint(dst, v.u, 10)
	case KindDouble:
		return strconv.AppendFloat(dst, v.f, 'g', -1, 64)
	case KindString:
		return appendString(dst, v.s)
	case KindArray:
		dst = append(dst, '[')
		for idx, elem := range v.arr {
			if idx > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, elem)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for idx, m := range v.obj {
			if idx > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			dst = appendValue(dst, m.Value)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// appendString emits a JSON string literal, delegating escaping to
// encoding/json.
func appendString(dst []byte, s string) []byte {
	quoted, err := json.Marshal(s)
	if err != nil {
		// json.Marshal of a string cannot fail; keep the emitter total.
		return append(dst, `""`...)
	}
	return append(dst, quoted...)
}
