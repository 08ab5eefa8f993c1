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

package models

// KeySource records how a table's primary-key field was determined.
type KeySource string

const (
	// KeyDeclared means the schema carried an explicit key field.
	KeyDeclared KeySource = "declared"
	// KeyRequiredFallback means the key was guessed from a single-entry
	// required list. Heuristic, flagged in logs.
	KeyRequiredFallback KeySource = "required_fallback"
)

// KeyResolution is the outcome of primary-key inference. The zero value is
// the unresolved state; write paths must check Resolved before touching the
// network.
type KeyResolution struct {
	Field  string    `json:"field"`
	Source KeySource `json:"source"`
}

// Resolved reports whether a primary-key field was inferred.
func (k KeyResolution) Resolved() bool {
	return k.Field != ""
}

// TableColumn is one normalized schema column.
type TableColumn struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsPrimaryKey bool   `json:"is_primary_key"`
}

// TableSchema is the normalized projection of a platform reference table.
// Columns are sorted by name so repeated fetches render identically.
type TableSchema struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Key         KeyResolution `json:"key"`
	Columns     []TableColumn `json:"columns"`
}

// Column returns the named column, if declared.
func (s *TableSchema) Column(name string) (TableColumn, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return TableColumn{}, false
}

// TableRow is an open key/value map whose key set mirrors the schema's
// column names. Exactly one value, the primary-key field's, identifies the
// row for update and delete.
type TableRow map[string]interface{}
