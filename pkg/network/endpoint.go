package network

import (
	"net/url"
	"sort"
	"strings"
)

// QueryItem is a single query parameter. A nil Value emits the bare name.
type QueryItem struct {
	Name  string
	Value *string
}

// Query returns a query item with a value.
func Query(name, value string) QueryItem {
	return QueryItem{Name: name, Value: &value}
}

// QueryFlag returns a query item without a value.
func QueryFlag(name string) QueryItem {
	return QueryItem{Name: name}
}

// HasValue reports whether the item carries a value.
func (q QueryItem) HasValue() bool { return q.Value != nil }

// ValueOr returns the value or fallback when absent.
func (q QueryItem) ValueOr(fallback string) string {
	if q.Value == nil {
		return fallback
	}
	return *q.Value
}

func (q QueryItem) clone() QueryItem {
	if q.Value == nil {
		return q
	}
	v := *q.Value
	return QueryItem{Name: q.Name, Value: &v}
}

// Endpoint describes a resource by path and query parameters, independent of host and scheme.
type Endpoint struct {
	path   string
	params []QueryItem
}

// NewEndpoint builds an endpoint. Params behave as a mapping: a repeated name
// keeps its first position and takes the latest value.
// The path is not validated here; a path without a leading "/" fails at wire assembly.
func NewEndpoint(path string, params ...QueryItem) Endpoint {
	e := Endpoint{path: path}
	if len(params) == 0 {
		return e
	}

	idx := make(map[string]int, len(params))
	for _, p := range params {
		if i, ok := idx[p.Name]; ok {
			e.params[i] = p.clone()
			continue
		}
		idx[p.Name] = len(e.params)
		e.params = append(e.params, p.clone())
	}
	return e
}

// EndpointFromMap builds an endpoint from a plain map. Keys are emitted in sorted order.
func EndpointFromMap(path string, params map[string]string) Endpoint {
	if len(params) == 0 {
		return NewEndpoint(path)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]QueryItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, Query(k, params[k]))
	}
	return NewEndpoint(path, items...)
}

// Path returns the endpoint path as given.
func (e Endpoint) Path() string { return e.path }

// Params returns a copy of the endpoint parameters.
func (e Endpoint) Params() []QueryItem { return cloneQueryItems(e.params) }

// QueryItems returns one query item per parameter in insertion order, or nil when there are none.
func (e Endpoint) QueryItems() []QueryItem {
	if len(e.params) == 0 {
		return nil
	}
	return cloneQueryItems(e.params)
}

func cloneQueryItems(items []QueryItem) []QueryItem {
	if items == nil {
		return nil
	}
	out := make([]QueryItem, len(items))
	for i, q := range items {
		out[i] = q.clone()
	}
	return out
}

// encodeQuery renders items in order. Names and values are percent-encoded with
// spaces as %20; items without a value are emitted without "=".
func encodeQuery(items []QueryItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, q := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeQueryComponent(q.Name))
		if q.Value != nil {
			b.WriteByte('=')
			b.WriteString(escapeQueryComponent(*q.Value))
		}
	}
	return b.String()
}

func escapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
