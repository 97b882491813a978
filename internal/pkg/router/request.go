package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/contactrelay/internal/pkg/goerror"
	"github.com/shandysiswandi/contactrelay/internal/pkg/validator"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetHeader returns the trimmed value of a request header.
func (r *Request) GetHeader(key string) string {
	return strings.TrimSpace(r.Header.Get(key))
}

// DecodeBody decodes a JSON or form-urlencoded body into dst.
//
// Form fields are matched against dst's json tags. An empty body decodes to
// the zero value so validation can report every missing field. Unknown fields
// are ignored. A field of the wrong JSON type yields a
// validator.V10ValidationError naming that field.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Request == nil {
		return goerror.NewInvalidFormat()
	}
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		return r.decodeForm(dst)
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return decodeError(err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return typeViolation(raw, typeErr)
		}
		return goerror.NewInvalidFormat()
	}

	return nil
}

// typeViolation reports a well-formed body whose field has the wrong JSON type
// as a field violation, the same shape the validator produces.
func typeViolation(raw []byte, typeErr *json.UnmarshalTypeError) error {
	var fields map[string]any
	//nolint:errcheck // raw already parsed once; the value is informational
	_ = json.Unmarshal(raw, &fields)

	return validator.V10ValidationError{{
		Type:     "field",
		Value:    fields[typeErr.Field],
		Msg:      typeErr.Field + " must be " + kindName(typeErr.Type),
		Path:     typeErr.Field,
		Location: "body",
	}}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return "of type " + t.String()
	}
}

func (r *Request) decodeForm(dst any) error {
	if err := r.ParseForm(); err != nil {
		return decodeError(err)
	}

	fields := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		fields[k] = r.PostForm.Get(k)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	return nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return goerror.NewInvalidFormat("Request body too large")
	}
	return goerror.NewInvalidFormat()
}
