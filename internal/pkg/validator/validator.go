package validator

// Validator validates request and domain structs.
type Validator interface {
	// Validate returns nil when data is valid and a V10ValidationError otherwise.
	Validate(data any) error
}
