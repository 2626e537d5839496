package network

// Method is an HTTP verb. It is an open set: callers may introduce verbs with Method("PATCH").
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// String returns the verb as sent on the wire.
func (m Method) String() string { return string(m) }
