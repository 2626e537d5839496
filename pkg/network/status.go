package network

// StatusCode wraps a raw HTTP status. It is not a closed enumeration; any int is valid.
type StatusCode int

// StatusFamily groups status codes by their hundreds range.
type StatusFamily int

const (
	FamilyUnexpected StatusFamily = iota
	FamilyInformational
	FamilySuccess
	FamilyRedirection
	FamilyClientError
	FamilyServerError
)

// String returns the snake_case family name used in logs.
func (f StatusFamily) String() string {
	switch f {
	case FamilyInformational:
		return "informational"
	case FamilySuccess:
		return "success"
	case FamilyRedirection:
		return "redirection"
	case FamilyClientError:
		return "client_error"
	case FamilyServerError:
		return "server_error"
	default:
		return "unexpected"
	}
}

// Family returns the family of s. Ranges are inclusive on both ends.
func (s StatusCode) Family() StatusFamily {
	switch {
	case s >= 100 && s <= 199:
		return FamilyInformational
	case s >= 200 && s <= 299:
		return FamilySuccess
	case s >= 300 && s <= 399:
		return FamilyRedirection
	case s >= 400 && s <= 499:
		return FamilyClientError
	case s >= 500 && s <= 599:
		return FamilyServerError
	default:
		return FamilyUnexpected
	}
}

// Classify returns nil for 2xx and an *Error of the matching kind otherwise.
func (s StatusCode) Classify() error {
	var kind Kind
	switch s.Family() {
	case FamilySuccess:
		return nil
	case FamilyInformational:
		kind = KindInformational
	case FamilyRedirection:
		kind = KindRedirection
	case FamilyClientError:
		kind = KindClientError
	case FamilyServerError:
		kind = KindServerError
	default:
		kind = KindUnexpected
	}
	return &Error{Kind: kind, StatusCode: int(s)}
}
