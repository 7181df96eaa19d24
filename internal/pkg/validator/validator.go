package validator

// Validator checks structs against their validate tags.
type Validator interface {
	Validate(data any) error
}
