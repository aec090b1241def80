package api

// Links represents HAL links of a resource or page.
type Links map[string]Link

// Link represents a single link.
type Link struct {
	Href string `json:"href" yaml:"href"`
}

// Next returns the href of the next page, if any.
func (l Links) Next() (string, bool) {
	link, ok := l["next"]
	if !ok || link.Href == "" {
		return "", false
	}

	return link.Href, true
}

// Order is the sort direction of list endpoints.
type Order string

// Sort directions.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)
