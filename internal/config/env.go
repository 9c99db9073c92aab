package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnv overrides every field tagged `env:"NAME"` whose variable is set.
// Nested structs are walked. Supported kinds: string, bool, integers,
// time.Duration and comma separated []string.
func applyEnv(target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("env target must be a pointer to a struct, got %T", target)
	}
	return applyEnvStruct(v.Elem())
}

func applyEnvStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field, value := t.Field(i), v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := applyEnvStruct(value); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := parseInto(value, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func parseInto(value reflect.Value, raw string) error {
	switch {
	case value.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		value.SetInt(int64(d))
	case value.Kind() == reflect.String:
		value.SetString(raw)
	case value.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		value.SetBool(b)
	case value.CanInt():
		n, err := strconv.ParseInt(raw, 10, value.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		value.SetInt(n)
	case value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.String:
		value.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field type %s", value.Type())
	}
	return nil
}

// splitList splits a comma separated value, dropping empty entries
func splitList(raw string) []string {
	parts := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
