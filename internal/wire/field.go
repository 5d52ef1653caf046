package wire

import (
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded tag/value pair. Only the value matching typ is set.
type field struct {
	num     protowire.Number
	typ     protowire.Type
	varint  uint64
	fixed64 uint64
	bytes   []byte
}

func (f field) str() string              { return string(f.bytes) }
func (f field) float() float64           { return math.Float64frombits(f.fixed64) }
func (f field) is(t protowire.Type) bool { return f.typ == t }

// walk calls fn for every field in b. Unknown wire types are skipped.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.fixed64, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// proto3 rules: zero values are not written

func appendString(out []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendString(out, s)
}

func appendVarint(out []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.VarintType)
	return protowire.AppendVarint(out, v)
}

func appendBool(out []byte, num protowire.Number, v bool) []byte {
	return appendVarint(out, num, protowire.EncodeBool(v))
}

func appendDouble(out []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(out, math.Float64bits(v))
}

func appendMessage(out []byte, num protowire.Number, inner []byte) []byte {
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendBytes(out, inner)
}

// google.protobuf.Timestamp layout: 1 seconds, 2 nanos
func appendTimestamp(out []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return out
	}
	var inner []byte
	inner = appendVarint(inner, 1, uint64(t.Unix()))
	inner = appendVarint(inner, 2, uint64(t.Nanosecond()))
	return appendMessage(out, num, inner)
}

func parseTimestamp(b []byte) (time.Time, error) {
	var sec, nsec int64
	err := walk(b, func(f field) error {
		switch {
		case f.num == 1 && f.is(protowire.VarintType):
			sec = int64(f.varint)
		case f.num == 2 && f.is(protowire.VarintType):
			nsec = int64(f.varint)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, nsec).UTC(), nil
}
