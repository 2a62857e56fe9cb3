package errx

import "fmt"

// Code identifies a registered error definition within a Registry.
type Code string

type definition struct {
	code       string
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions of one module, namespaced by a
// prefix (e.g. "LEAD" -> "LEAD_NOT_FOUND").
type Registry struct {
	prefix      string
	definitions map[Code]definition
}

// NewRegistry creates a registry with the given code prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[Code]definition),
	}
}

// Register adds an error definition and returns its code for later New calls.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.definitions[full] = definition{
		code:       string(full),
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New instantiates a fresh Error from a registered definition.
func (r *Registry) New(code Code) *Error {
	def, ok := r.definitions[code]
	if !ok {
		return &Error{
			Code:       fmt.Sprintf("%s_UNKNOWN", r.prefix),
			Type:       TypeInternal,
			Message:    fmt.Sprintf("unregistered error code %q", code),
			HTTPStatus: 500,
		}
	}
	return &Error{
		Code:       def.code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}
