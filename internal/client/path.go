package client

import (
	"net/url"
	"strings"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Path is a path template with {name} placeholders and their values.
type Path struct {
	Template string
	Params   map[string]string
}

// NewPath builds a Path from a template and alternating name, value pairs.
func NewPath(template string, pairs ...string) Path {
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		params[pairs[i]] = pairs[i+1]
	}

	return Path{Template: template, Params: params}
}

// Resolve substitutes every placeholder with its escaped value. A missing,
// empty or dot-segment value is a precondition error naming the parameter.
func (p Path) Resolve() (string, error) {
	var sb strings.Builder

	rest := p.Template

	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			sb.WriteString(rest)

			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", comms.NewPreconditionError("", "unterminated placeholder in path "+p.Template)
		}

		end += start
		name := rest[start+1 : end]

		value, ok := p.Params[name]
		if !ok || value == "" {
			return "", comms.NewPreconditionError(name, "path parameter is required")
		}

		if value == "." || value == ".." {
			return "", comms.NewPreconditionError(name, "path parameter must not be a dot segment")
		}

		sb.WriteString(rest[:start])
		sb.WriteString(url.PathEscape(value))

		rest = rest[end+1:]
	}

	return sb.String(), nil
}
