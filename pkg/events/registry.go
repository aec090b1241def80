package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Static errors for err113 compliance.
var (
	ErrMissingDiscriminator = errors.New("missing discriminator")
	ErrNotAnObject          = errors.New("expected a JSON object")
	ErrNotAnArray           = errors.New("expected a JSON array")
	ErrUnregisteredVariant  = errors.New("no variant registered")
	ErrTrailingData         = errors.New("unexpected data after JSON value")
)

// Fields is a JSON object split into its members.
type Fields map[string]json.RawMessage

// DecodeContext is threaded into nested decode calls. Inherited carries the
// discriminator of the enclosing object for children that omit their own.
type DecodeContext struct {
	Inherited string
}

// DecodeFunc decodes an object once its variant is known. discriminator is
// the original (non-normalized) value that selected the variant.
type DecodeFunc[T any] func(discriminator string, fields Fields, dc DecodeContext) (T, error)

type prefixFamily[T any] struct {
	prefix string
	decode DecodeFunc[T]
}

// Registry maps discriminator values to decode logic for one union type. A
// registry is built once and only read afterwards, so it is safe for
// concurrent use.
type Registry[T any] struct {
	field     string
	normalize func(string) string
	variants  map[string]DecodeFunc[T]
	families  []prefixFamily[T]
	fallback  DecodeFunc[T]
}

// NewRegistry creates a registry that reads the discriminator from field.
// normalize maps wire values to registry keys; nil keeps them verbatim. A
// key with no registered variant sends the object to the fallback.
func NewRegistry[T any](field string, normalize func(string) string) *Registry[T] {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}

	return &Registry[T]{
		field:     field,
		normalize: normalize,
		variants:  make(map[string]DecodeFunc[T]),
	}
}

// Register adds a variant keyed by its normalized discriminator.
func (r *Registry[T]) Register(key string, decode DecodeFunc[T]) *Registry[T] {
	if _, exists := r.variants[key]; exists {
		panic(fmt.Sprintf("events: variant %q registered twice for %q", key, r.field))
	}

	r.variants[key] = decode

	return r
}

// RegisterFamily adds a namespaced family matched by an exact prefix of the
// original discriminator. Families are checked before exact variants.
func (r *Registry[T]) RegisterFamily(prefix string, decode DecodeFunc[T]) *Registry[T] {
	r.families = append(r.families, prefixFamily[T]{prefix: prefix, decode: decode})

	return r
}

// Fallback sets the decoder for well-formed objects whose discriminator is not
// registered. Without a fallback those objects fail to decode.
func (r *Registry[T]) Fallback(decode DecodeFunc[T]) *Registry[T] {
	r.fallback = decode

	return r
}

// Has reports whether key names a registered variant.
func (r *Registry[T]) Has(key string) bool {
	_, ok := r.variants[key]

	return ok
}

// Keys returns the registered variant keys.
func (r *Registry[T]) Keys() []string {
	keys := make([]string, 0, len(r.variants))
	for key := range r.variants {
		keys = append(keys, key)
	}

	return keys
}

// Decode parses data as an object and dispatches on its discriminator. When
// the object has no discriminator, dc.Inherited is used instead.
func (r *Registry[T]) Decode(data []byte, dc DecodeContext) (T, error) {
	var zero T

	fields, err := SplitObject(data)
	if err != nil {
		return zero, err
	}

	return r.DecodeFields(fields, dc)
}

// DecodeFields dispatches an already split object.
func (r *Registry[T]) DecodeFields(fields Fields, dc DecodeContext) (T, error) {
	var zero T

	discriminator, err := r.discriminator(fields, dc)
	if err != nil {
		return zero, err
	}

	for _, family := range r.families {
		if len(discriminator) > len(family.prefix) && strings.HasPrefix(discriminator, family.prefix) {
			return family.decode(discriminator, fields, dc)
		}
	}

	if decode, ok := r.variants[r.normalize(discriminator)]; ok {
		return decode(discriminator, fields, dc)
	}

	if r.fallback != nil {
		return r.fallback(discriminator, fields, dc)
	}

	return zero, comms.NewMalformedPayloadError(r.field, fmt.Errorf("%w: %q", ErrUnregisteredVariant, discriminator))
}

func (r *Registry[T]) discriminator(fields Fields, dc DecodeContext) (string, error) {
	raw, ok := fields[r.field]
	if !ok || isNull(raw) {
		if dc.Inherited != "" {
			return dc.Inherited, nil
		}

		return "", comms.NewMalformedPayloadError(r.field, ErrMissingDiscriminator)
	}

	var value string

	err := json.Unmarshal(raw, &value)
	if err != nil {
		return "", comms.NewMalformedPayloadError(r.field, err)
	}

	if value == "" {
		if dc.Inherited != "" {
			return dc.Inherited, nil
		}

		return "", comms.NewMalformedPayloadError(r.field, ErrMissingDiscriminator)
	}

	return value, nil
}

// SplitObject parses data into its top-level members. Member values are
// compacted so that re-encoding them is stable.
func SplitObject(data []byte) (Fields, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, comms.NewMalformedPayloadError("", ErrNotAnObject)
	}

	var fields Fields

	err := json.Unmarshal(trimmed, &fields)
	if err != nil {
		return nil, comms.NewMalformedPayloadError("", err)
	}

	for name, raw := range fields {
		var buf bytes.Buffer

		err := json.Compact(&buf, raw)
		if err != nil {
			return nil, comms.NewMalformedPayloadError(name, err)
		}

		fields[name] = buf.Bytes()
	}

	return fields, nil
}

// decodeField unmarshals fields[name] into dst when present and not null.
// Failures are scoped to the field.
func decodeField(fields Fields, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil
	}

	err := unmarshalNumbers(raw, dst)
	if err != nil {
		return comms.NewMalformedPayloadError(name, err)
	}

	return nil
}

// unmarshalNumbers is json.Unmarshal with numbers in untyped values kept as
// json.Number, so integers beyond 2^53 survive a decode and encode.
func unmarshalNumbers(raw []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	err := decoder.Decode(dst)
	if err != nil {
		return err
	}

	if decoder.More() {
		return ErrTrailingData
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
