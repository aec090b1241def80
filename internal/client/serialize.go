package client

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

var jsonNull = []byte("null")

// serialize renders req as a JSON body for write methods and as query
// parameters otherwise. Unset fields are omitted by the request types' json
// tags, so neither form carries explicit nulls.
func (e *Endpoint[Req, Res]) serialize(req Req) ([]byte, url.Values, error) {
	if _, ok := any(req).(comms.Empty); ok {
		return nil, nil, nil
	}

	var (
		data []byte
		err  error
	)

	if e.encode != nil {
		data, err = e.encode(req)
	} else {
		data, err = json.Marshal(req)
	}

	if err != nil {
		return nil, nil, &comms.PreconditionError{Field: "body", Constraint: "cannot be serialized", Err: err}
	}

	if !e.method.HasBody() {
		query, err := flattenQuery(data)

		return nil, query, err
	}

	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil, nil, comms.NewPreconditionError("body", "is required")
	}

	return data, nil, nil
}

// flattenQuery turns a JSON object into query values. Strings are sent
// unquoted, arrays become repeated keys, nested objects are sent as compact
// JSON and nulls are dropped.
func flattenQuery(data []byte) (url.Values, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil, nil
	}

	var fields map[string]json.RawMessage

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, &comms.PreconditionError{Field: "query", Constraint: "must be a JSON object", Err: err}
	}

	query := make(url.Values, len(fields))

	for key, raw := range fields {
		raw = bytes.TrimSpace(raw)

		if len(raw) > 0 && raw[0] == '[' {
			var items []json.RawMessage

			err = json.Unmarshal(raw, &items)
			if err != nil {
				return nil, &comms.PreconditionError{Field: key, Constraint: "cannot be rendered as a query value", Err: err}
			}

			for _, item := range items {
				value, ok, err := queryValue(item)
				if err != nil {
					return nil, &comms.PreconditionError{Field: key, Constraint: "cannot be rendered as a query value", Err: err}
				}

				if ok {
					query.Add(key, value)
				}
			}

			continue
		}

		value, ok, err := queryValue(raw)
		if err != nil {
			return nil, &comms.PreconditionError{Field: key, Constraint: "cannot be rendered as a query value", Err: err}
		}

		if ok {
			query.Set(key, value)
		}
	}

	if len(query) == 0 {
		return nil, nil
	}

	return query, nil
}

func queryValue(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)

	switch {
	case len(raw) == 0 || bytes.Equal(raw, jsonNull):
		return "", false, nil
	case raw[0] == '"':
		var value string

		err := json.Unmarshal(raw, &value)
		if err != nil {
			return "", false, err
		}

		return value, true, nil
	case raw[0] == '{' || raw[0] == '[':
		var buf bytes.Buffer

		err := json.Compact(&buf, raw)
		if err != nil {
			return "", false, err
		}

		return buf.String(), true, nil
	default:
		return string(raw), true, nil
	}
}

// isNilRequest reports whether req is a nil pointer, map, slice or interface.
func isNilRequest(req any) bool {
	if req == nil {
		return true
	}

	value := reflect.ValueOf(req)

	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}
