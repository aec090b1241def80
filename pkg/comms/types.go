package comms

// Empty is the result of operations that answer 204 No Content or an empty body.
type Empty struct{}

// Method is an HTTP method accepted by endpoint descriptors.
type Method string

// Supported methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// HasBody reports whether requests with this method carry a JSON body;
// the others render their parameters as a query string.
func (m Method) HasBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}

	return false
}

// Ptr returns a pointer to v. Request types use pointers to tell an unset
// field apart from one explicitly set to its zero value.
func Ptr[T any](v T) *T {
	return &v
}
