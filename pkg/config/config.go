package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load fills target, a pointer to a struct, in increasing priority:
// `default` struct tags, the YAML file at path (skipped when path is
// empty), then environment variables named PREFIX_FIELD, with nested
// structs adding their field name to the prefix.
func Load(target any, prefix string, path string) (err error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: target must be a struct pointer, got %T", target)
	}
	if err = walk(v.Elem(), nil, func(fv reflect.Value, ft reflect.StructField, _ []string) error {
		if tag := ft.Tag.Get("default"); tag != "" {
			return assign(fv, ft.Name, tag)
		}
		return nil
	}); err != nil {
		return
	}
	if path != "" {
		if err = ParseFile(target, path); err != nil {
			return
		}
	}
	return walk(v.Elem(), []string{strings.ToUpper(prefix)}, func(fv reflect.Value, ft reflect.StructField, names []string) error {
		if env := os.Getenv(strings.Join(names, "_")); env != "" {
			return assign(fv, ft.Name, env)
		}
		return nil
	})
}

// ParseFile decodes the YAML file at path over target.
func ParseFile(target any, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = yaml.NewDecoder(f).Decode(target); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func walk(v reflect.Value, prefix []string, f func(reflect.Value, reflect.StructField, []string) error) error {
	t := v.Type()
	for i := range t.NumField() {
		ft, fv := t.Field(i), v.Field(i)
		if !ft.IsExported() || ft.Tag.Get("yaml") == "-" {
			continue
		}
		names := append(prefix[:len(prefix):len(prefix)], strings.ToUpper(ft.Name))
		if ft.Type.Kind() == reflect.Struct && ft.Type != durationType {
			if err := walk(fv, names, f); err != nil {
				return err
			}
			continue
		}
		if err := f(fv, ft, names); err != nil {
			return err
		}
	}
	return nil
}

func assign(target reflect.Value, name, value string) error {
	if target.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config: %s: invalid duration %q, add a unit (ms, s, m, h)", name, value)
		}
		target.SetInt(int64(d))
		return nil
	}
	if err := yaml.Unmarshal([]byte(value), target.Addr().Interface()); err != nil {
		return fmt.Errorf("config: %s: %w", name, err)
	}
	return nil
}
