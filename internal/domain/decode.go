package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrQuotedNumber is returned when a decimal field arrives as a JSON string
var ErrQuotedNumber = errors.New("must be a JSON number, not a string")

var decimalType = reflect.TypeOf(decimal.Decimal{})

// DecodeStrict reads exactly one JSON object from r into dst. Unknown fields
// are rejected, and so are decimal fields sent as strings: amounts follow the
// same typing rules as the integer fields.
func DecodeStrict(r io.Reader, dst interface{}) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
	return checkNumbers(reflect.TypeOf(dst), raw, "")
}

// checkNumbers walks the raw document alongside t and fails on the first
// decimal field holding a string.
func checkNumbers(t reflect.Type, raw interface{}, path string) error {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == decimalType {
		if _, quoted := raw.(string); quoted {
			return fmt.Errorf("%s %w", path, ErrQuotedNumber)
		}
		return nil
	}

	object, ok := raw.(map[string]interface{})
	if !ok || t.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}

		// encoding/json matches keys case-insensitively
		for key, value := range object {
			if !strings.EqualFold(key, name) {
				continue
			}
			if err := checkNumbers(field.Type, value, joinPath(path, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
