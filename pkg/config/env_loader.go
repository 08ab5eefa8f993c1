/*
 * Copyright 2026 Convoyant, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
)

// EnvConfigLoader loads configuration from environment variables. Nested
// struct fields join with underscores: CXDASH_SESSION_CLIENT_ID maps to
// cfg.Session.ClientID (via the field's json tag).
type EnvConfigLoader struct {
	prefix string
}

// NewEnvConfigLoader creates an environment variable config loader with the
// given variable prefix.
func NewEnvConfigLoader(prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{prefix: prefix}
}

// Load implements ConfigLoader by reading from environment variables. The
// path argument is unused.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	return e.loadStruct(v, e.prefix)
}

func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		name := envFieldName(t.Field(i))
		if name == "" {
			continue
		}

		key := prefix + strings.ToUpper(name)

		if field.Kind() == reflect.Struct {
			if err := e.loadStruct(field, key+"_"); err != nil {
				return err
			}

			continue
		}

		raw, found := os.LookupEnv(key)
		if !found {
			continue
		}

		if err := setField(field, raw); err != nil {
			return fmt.Errorf("failed to set %s from %s: %w", t.Field(i).Name, key, err)
		}
	}

	return nil
}

// envFieldName derives the env-var segment for a struct field from its json
// tag, falling back to the Go field name.
func envFieldName(f reflect.StructField) string {
	tag := strings.Split(f.Tag.Get("json"), ",")[0]
	if tag == "-" {
		return ""
	}

	if tag != "" {
		return tag
	}

	return f.Name
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}

		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}

		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind()) //nolint:err113 // dynamic detail
	}

	return nil
}
