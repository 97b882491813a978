// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on the Validator interface; the go-playground/validator
// v10 implementation lives here and reports failures as an ordered list of
// field violations keyed by json field name.
package validator
