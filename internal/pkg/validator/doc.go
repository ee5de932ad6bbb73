// Package validator provides struct validation for request payloads.
//
// Usecases depend on the Validator interface; the concrete implementation
// wraps go-playground/validator v10 with English translations and the custom
// rules this service needs.
package validator
