package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/taskhub-api/internal/constants"
	"github.com/yukikurage/taskhub-api/internal/dto"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		dto.RegisterValidators(v)
	}
}

// ValidateJSON decodes and validates the body into T before the handler
// runs. Handlers read the result with Body.
func ValidateJSON[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, failures := decodeBody[T](c.Request)
		if len(failures) > 0 {
			apierrors.ValidationFailed(c, strings.Join(failures, ", "))
			return
		}
		c.Set(constants.ContextKeyBody, body)
		c.Next()
	}
}

// decodeBody reports every wrongly typed field together with every rule
// the decoded body breaks. Fields that failed to decode are not validated
// again, so a wrong type is not also reported as missing.
func decodeBody[T any](req *http.Request) (*T, []string) {
	if req.Body == nil {
		return nil, []string{"body: is required"}
	}
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, []string{"body: could not be read"}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, []string{"body: is required"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []string{"body: must be an object"}
		}
		return nil, []string{"body: must be valid JSON"}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var failures []string
	mistyped := make(map[string]bool)
	for _, key := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{key: fields[key]})
		if err != nil {
			continue
		}
		if err := json.Unmarshal(single, new(T)); err != nil {
			failures = append(failures, key+": "+decodeReason(err))
			mistyped[strings.ToLower(key)] = true
		}
	}

	// Wrongly typed fields stay at their zero value here.
	body := new(T)
	_ = json.Unmarshal(raw, body)

	if err := binding.Validator.ValidateStruct(body); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, append(failures, err.Error())
		}
		for _, fe := range verrs {
			path := fieldPath(fe)
			if mistyped[strings.ToLower(rootField(path))] {
				continue
			}
			failures = append(failures, path+": "+reason(fe))
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return body, nil
}

func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "must be " + article(typeErr.Type)
	}
	return "must be valid JSON"
}

// rootField returns the top-level field of a path like "items[0].name".
func rootField(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

// Body returns the body validated by ValidateJSON[T]. It panics when the
// route was not wired with the matching ValidateJSON.
func Body[T any](c *gin.Context) *T {
	value, _ := c.Get(constants.ContextKeyBody)
	body, ok := value.(*T)
	if !ok {
		panic(fmt.Sprintf("middleware: no validated %T body on route %s", *new(T), c.FullPath()))
	}
	return body
}

// ValidateIDParams requires each named path parameter to be a positive integer.
func ValidateIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var failures []string
		for _, name := range names {
			id, err := strconv.ParseUint(c.Param(name), 10, 64)
			if err != nil || id == 0 {
				failures = append(failures, name+": must be a positive integer")
				continue
			}
			c.Set(constants.ContextKeyIDPrefix+name, id)
		}
		if len(failures) > 0 {
			apierrors.ValidationFailed(c, strings.Join(failures, ", "))
			return
		}
		c.Next()
	}
}

// IDParam returns a path parameter checked by ValidateIDParams.
func IDParam(c *gin.Context, name string) uint64 {
	return c.GetUint64(constants.ContextKeyIDPrefix + name)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "rfc3339":
		return "must be an RFC3339 date-time"
	case "oneof":
		return "must be one of " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be at most " + param
	case "min":
		return "must be at least " + param + unit(fe.Kind())
	case "max":
		return "must be at most " + param + unit(fe.Kind())
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func unit(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}

func article(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a non-negative integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
