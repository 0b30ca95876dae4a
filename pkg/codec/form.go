package codec

import (
	jsonlib "encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
)

const ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"

// Form codec encodes bodies as "application/x-www-form-urlencoded".
//
// Supported body types are url.Values, map[string]string, map[string]any and structs.
// Struct field names are read from the `writeas` tag or from the "json" tag as fallback,
// see StructToMap.
type Form struct{}

func NewForm() Form {
	return Form{}
}

func (Form) ContentType() string {
	return ContentTypeFormURLEncoded
}

func (Form) Encode(v any) ([]byte, error) {
	var fields map[string]string
	switch v := v.(type) {
	case url.Values:
		return []byte(v.Encode()), nil
	case map[string]string:
		fields = v
	case map[string]any:
		var err error
		if fields, err = ToFormBody(v); err != nil {
			return nil, err
		}
	default:
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return nil, fmt.Errorf("cannot encode %T as a form body", v)
		}
		m, err := StructToMap(v, nil)
		if err != nil {
			return nil, err
		}
		if fields, err = ToFormBody(m); err != nil {
			return nil, err
		}
	}

	values := make(url.Values)
	for k, v := range fields {
		values.Set(k, v)
	}
	return []byte(values.Encode()), nil
}

func (Form) Decode(data []byte, v any) error {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return fmt.Errorf("cannot decode form result: %w", err)
	}
	switch v := v.(type) {
	case *url.Values:
		*v = values
	case *map[string]string:
		out := make(map[string]string, len(values))
		for k := range values {
			out[k] = values.Get(k)
		}
		*v = out
	default:
		return fmt.Errorf("cannot decode a form result to %T", v)
	}
	return nil
}

// ToFormBody converts a JSON like map to form body map, any type is mapped to string.
// Slices and string maps are expanded to the "key[index]" notation.
func ToFormBody(in map[string]any) (map[string]string, error) {
	out := make(map[string]string)
	for k, v := range in {
		if v == nil {
			out[k] = ""
			continue
		}
		switch typed := v.(type) {
		case []string:
			for i, s := range typed {
				out[fmt.Sprintf("%s[%d]", k, i)] = s
			}
		case map[string]string:
			for i, s := range typed {
				out[fmt.Sprintf("%s[%s]", k, i)] = s
			}
		default:
			str, err := castToString(v)
			if err != nil {
				return nil, err
			}
			out[k] = str
		}
	}
	return out, nil
}

// StructToMap converts a struct to values map.
// Only defined allowedFields are converted.
// If allowedFields = nil, then all fields are exported.
//
// Field name is read from `writeas` tag or from "json" tag as fallback.
// Field with tag `readonly:"true"` is ignored.
// Field with tag `writeoptional:"true"` is exported only if value is not empty.
func StructToMap(in any, allowedFields []string) (map[string]any, error) {
	out := make(map[string]any)
	allowed := make(map[string]bool)
	for _, field := range allowedFields {
		allowed[field] = true
	}
	if err := structToMap(reflect.ValueOf(in), out, allowed); err != nil {
		return nil, err
	}
	return out, nil
}

func structToMap(in reflect.Value, out map[string]any, allowed map[string]bool) error {
	for in.Kind() == reflect.Ptr || in.Kind() == reflect.Interface {
		in = in.Elem()
	}
	t := in.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := in.Field(i)

		// Process embedded type
		if field.Anonymous {
			if err := structToMap(fieldValue, out, allowed); err != nil {
				return err
			}
			continue
		}

		if !field.IsExported() || field.Tag.Get("readonly") == "true" {
			continue
		}

		if field.Tag.Get("writeoptional") == "true" && fieldValue.IsZero() {
			continue
		}

		var fieldName string
		if v := field.Tag.Get("writeas"); v != "" {
			fieldName = v
		} else if v := strings.Split(field.Tag.Get("json"), ",")[0]; v != "" {
			fieldName = v
		} else {
			return fmt.Errorf(`field "%s" of %s has no json name`, field.Name, t.String())
		}

		if fieldName == "-" {
			continue
		}

		if len(allowed) > 0 && !allowed[fieldName] {
			continue
		}

		out[fieldName] = fieldValue.Interface()
	}
	return nil
}

func castToString(v any) (string, error) {
	// Ordered map is encoded as a compact JSON object, keys keep their order.
	if orderedMap, ok := v.(*orderedmap.OrderedMap); ok {
		// The standard library is used, json-iterator returns non-compact JSON for custom MarshalJSON methods.
		out, err := jsonlib.Marshal(orderedMap)
		if err != nil {
			return "", fmt.Errorf(`cannot cast %T to string: %w`, v, err)
		}
		return string(out), nil
	}

	out, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf(`cannot cast %T to string: %w`, v, err)
	}
	return out, nil
}
