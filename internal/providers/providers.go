// Package providers holds the shared pieces of the external profile clients:
// error kinds that the fallback policy branches on and JSON Schema validation
// of upstream payloads. A response that fails validation is a distinct error
// variant from a network failure, so callers can tell a provider outage from
// an API shape change.
package providers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrNotConfigured marks a provider whose credentials/username are unset.
// This is a capability reduction, not a failure.
var ErrNotConfigured = errors.New("provider not configured")

// SchemaError reports an upstream payload that does not match the expected
// shape.
type SchemaError struct {
	Provider string
	Causes   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: response failed schema validation: %s", e.Provider, strings.Join(e.Causes, "; "))
}

// IsSchemaError reports whether err (or anything it wraps) is a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// UpstreamError reports a non-2xx response or transport failure.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream responded with status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: upstream request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidateJSON checks raw against the given JSON Schema document.
func ValidateJSON(provider string, raw []byte, schema string) error {
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// undecodable body counts as a shape mismatch, not a transport error
		return &SchemaError{Provider: provider, Causes: []string{err.Error()}}
	}
	if !res.Valid() {
		causes := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			causes = append(causes, e.String())
		}
		return &SchemaError{Provider: provider, Causes: causes}
	}
	return nil
}
