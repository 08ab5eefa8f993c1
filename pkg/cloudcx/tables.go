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

package cloudcx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/convoyant/cxdash/pkg/models"
)

// inferPrimaryKey determines a table's primary-key field from the raw
// schema. Tiered: an explicit key field always wins; a required list with
// exactly one entry naming a declared property is a heuristic fallback; else
// the key stays unresolved and every write path refuses the table.
func inferPrimaryKey(raw *rawTableSchema) models.KeyResolution {
	if key := strings.TrimSpace(raw.Key); key != "" {
		return models.KeyResolution{Field: key, Source: models.KeyDeclared}
	}

	if len(raw.Required) == 1 {
		candidate := raw.Required[0]
		if _, declared := raw.Properties[candidate]; declared {
			return models.KeyResolution{Field: candidate, Source: models.KeyRequiredFallback}
		}
	}

	return models.KeyResolution{}
}

// resolveColumnType unwraps a schema property's declared type: either a bare
// JSON string or one nesting level of {"type": "..."}. Anything else
// defaults to "string".
func resolveColumnType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "string"
	}

	var direct string
	if err := json.Unmarshal(raw, &direct); err == nil && direct != "" {
		return direct
	}

	var nested struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(raw, &nested); err == nil && nested.Type != "" {
		return nested.Type
	}

	return "string"
}

// normalizeSchema builds the stable TableSchema from a raw blob. Columns
// sort by name so repeated fetches render identically.
func (c *Client) normalizeSchema(raw *rawTableSchema) *models.TableSchema {
	key := inferPrimaryKey(raw)

	switch key.Source {
	case models.KeyRequiredFallback:
		c.log.Warn().
			Str("table_id", raw.ID).
			Str("key_field", key.Field).
			Msg("Primary key inferred from required list, not an authoritative schema signal")
	case models.KeyDeclared:
	default:
		c.log.Warn().
			Str("table_id", raw.ID).
			Msg("Table schema declares no usable primary key; writes will be refused")
	}

	columns := make([]models.TableColumn, 0, len(raw.Properties))

	for name, prop := range raw.Properties {
		columns = append(columns, models.TableColumn{
			Name:         name,
			Type:         resolveColumnType(prop.Type),
			IsPrimaryKey: name == key.Field,
		})
	}

	sort.Slice(columns, func(i, j int) bool { return columns[i].Name < columns[j].Name })

	return &models.TableSchema{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Key:         key,
		Columns:     columns,
	}
}

// ListTables fetches one page of reference tables with normalized schemas.
func (c *Client) ListTables(ctx context.Context) ([]*models.TableSchema, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("expand", "schema")

	var resp tableListResponse

	if err := c.do(ctx, http.MethodGet, "/api/v2/flows/datatables", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	schemas := make([]*models.TableSchema, 0, len(resp.Entities))

	for i := range resp.Entities {
		schemas = append(schemas, c.normalizeSchema(&resp.Entities[i]))
	}

	return schemas, nil
}

// GetTableSchema fetches and normalizes one table's schema.
func (c *Client) GetTableSchema(ctx context.Context, tableID string) (*models.TableSchema, error) {
	path := fmt.Sprintf("/api/v2/flows/datatables/%s", url.PathEscape(tableID))

	var raw rawTableSchema

	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get schema for table %s: %w", tableID, err)
	}

	return c.normalizeSchema(&raw), nil
}

// ListTableRows fetches one page of rows for a table.
func (c *Client) ListTableRows(ctx context.Context, tableID string) ([]models.TableRow, error) {
	path := fmt.Sprintf("/api/v2/flows/datatables/%s/rows", url.PathEscape(tableID))

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("showbrief", "false")

	var resp rowListResponse

	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list rows for table %s: %w", tableID, err)
	}

	rows := make([]models.TableRow, 0, len(resp.Entities))

	for _, e := range resp.Entities {
		rows = append(rows, models.TableRow(e))
	}

	return rows, nil
}

// keyValueOf extracts and trims the payload's value at the schema's key
// field. Pre-flight: never called once the network request is in flight.
func keyValueOf(schema *models.TableSchema, row models.TableRow) (string, error) {
	if !schema.Key.Resolved() {
		return "", fmt.Errorf("%w: no primary key inferred for table %s", ErrSchemaIncomplete, schema.ID)
	}

	raw, ok := row[schema.Key.Field]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: payload missing key field %q", ErrSchemaIncomplete, schema.Key.Field)
	}

	value := strings.TrimSpace(fmt.Sprintf("%v", raw))
	if value == "" {
		return "", fmt.Errorf("%w: empty value for key field %q", ErrSchemaIncomplete, schema.Key.Field)
	}

	return value, nil
}

// sanitizeRowNumbers copies a row, coercing non-finite numeric values to
// null so they are never submitted as NaN.
func sanitizeRowNumbers(row models.TableRow) models.TableRow {
	out := make(models.TableRow, len(row))

	for k, v := range row {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			out[k] = nil
			continue
		}

		out[k] = v
	}

	return out
}

// CreateTableRow validates the payload against the inferred primary key and
// submits it. A key collision on the platform side is reported as
// DuplicateKeyError naming the offending key value.
func (c *Client) CreateTableRow(ctx context.Context, schema *models.TableSchema, row models.TableRow) (models.TableRow, error) {
	keyValue, err := keyValueOf(schema, row)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v2/flows/datatables/%s/rows", url.PathEscape(schema.ID))

	var created rawTableRow

	if err := c.do(ctx, http.MethodPost, path, nil, sanitizeRowNumbers(row), &created); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, &DuplicateKeyError{Key: keyValue}
		}

		return nil, fmt.Errorf("failed to create row in table %s: %w", schema.ID, err)
	}

	return models.TableRow(created), nil
}

// UpdateTableRow patches an existing row by its opaque identifier, normally
// the primary-key value read off the original row.
func (c *Client) UpdateTableRow(ctx context.Context, schema *models.TableSchema, rowID string, row models.TableRow) (models.TableRow, error) {
	if !schema.Key.Resolved() {
		return nil, fmt.Errorf("%w: no primary key inferred for table %s", ErrSchemaIncomplete, schema.ID)
	}

	if strings.TrimSpace(rowID) == "" {
		return nil, fmt.Errorf("%w: empty row identifier", ErrSchemaIncomplete)
	}

	path := fmt.Sprintf("/api/v2/flows/datatables/%s/rows/%s",
		url.PathEscape(schema.ID), url.PathEscape(rowID))

	var updated rawTableRow

	if err := c.do(ctx, http.MethodPut, path, nil, sanitizeRowNumbers(row), &updated); err != nil {
		return nil, fmt.Errorf("failed to update row %s in table %s: %w", rowID, schema.ID, err)
	}

	return models.TableRow(updated), nil
}

// DeleteTableRow removes a row by its opaque identifier.
func (c *Client) DeleteTableRow(ctx context.Context, schema *models.TableSchema, rowID string) error {
	if !schema.Key.Resolved() {
		return fmt.Errorf("%w: no primary key inferred for table %s", ErrSchemaIncomplete, schema.ID)
	}

	if strings.TrimSpace(rowID) == "" {
		return fmt.Errorf("%w: empty row identifier", ErrSchemaIncomplete)
	}

	path := fmt.Sprintf("/api/v2/flows/datatables/%s/rows/%s",
		url.PathEscape(schema.ID), url.PathEscape(rowID))

	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete row %s from table %s: %w", rowID, schema.ID, err)
	}

	return nil
}
