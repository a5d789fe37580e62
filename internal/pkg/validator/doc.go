// Package validator provides a small validation abstraction for request
// structs.
//
// Business code depends on the Validator interface. The go-playground
// validator v10 implementation lives in this package, together with adapters
// that expose struct rules as mediator validators.
package validator
