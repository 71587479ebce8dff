package request

import (
	"net/http"
	"strings"
)

// Headers is an ordered, case-insensitive and multi-valued header set.
// Names keep the casing of their first occurrence and the order in which they
// first appeared.
type Headers struct {
	fields []*headerField
	index  map[string]*headerField
}

type headerField struct {
	name   string
	values []string
}

// NewHeaders creates an empty header set.
func NewHeaders() *Headers {
	return &Headers{
		fields: make([]*headerField, 0),
		index:  map[string]*headerField{},
	}
}

// Add appends a value to the given header without removing existing ones.
func (h *Headers) Add(name, value string) {
	key := strings.ToLower(name)
	// Check if header already exists
	if f, ok := h.index[key]; ok {
		f.values = append(f.values, value)

		return
	}

	f := &headerField{name: name, values: []string{value}}
	h.fields = append(h.fields, f)
	h.index[key] = f
}

// Set replaces all values of the given header.
func (h *Headers) Set(name, value string) {
	key := strings.ToLower(name)
	if f, ok := h.index[key]; ok {
		f.values = []string{value}

		return
	}

	h.Add(name, value)
}

// Del removes the given header.
func (h *Headers) Del(name string) {
	key := strings.ToLower(name)
	if _, ok := h.index[key]; !ok {
		return
	}

	delete(h.index, key)

	for i, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			h.fields = append(h.fields[:i], h.fields[i+1:]...)

			break
		}
	}
}

// Lookup returns the comma joined values of the header and whether it exists.
func (h *Headers) Lookup(name string) (string, bool) {
	f, ok := h.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}

	return strings.Join(f.values, ","), true
}

// Get returns the comma joined values of the header, empty when absent.
func (h *Headers) Get(name string) string {
	v, _ := h.Lookup(name)

	return v
}

// Values returns a copy of all values stored for the header.
func (h *Headers) Values(name string) []string {
	f, ok := h.index[strings.ToLower(name)]
	if !ok {
		return nil
	}

	res := make([]string, len(f.values))
	copy(res, f.values)

	return res
}

// Has reports whether the header is present.
func (h *Headers) Has(name string) bool {
	_, ok := h.index[strings.ToLower(name)]

	return ok
}

// Names returns the header names in insertion order.
func (h *Headers) Names() []string {
	res := make([]string, 0, len(h.fields))
	for _, f := range h.fields {
		res = append(res, f.name)
	}

	return res
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.fields)
}

// Each calls fn for every value in insertion order.
func (h *Headers) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		for _, v := range f.values {
			fn(f.name, v)
		}
	}
}

// HTTPHeader converts the set to a net/http header map.
func (h *Headers) HTTPHeader() http.Header {
	res := make(http.Header, len(h.fields))
	h.Each(res.Add)

	return res
}

// String renders the header block as it would appear on the wire.
func (h *Headers) String() string {
	var sb strings.Builder

	for _, f := range h.fields {
		sb.WriteString(f.name)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(f.values, ","))
		sb.WriteString("\r\n")
	}

	sb.WriteString("\r\n")

	return sb.String()
}
