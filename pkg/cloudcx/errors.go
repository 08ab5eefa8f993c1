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

// Package cloudcx pkg/cloudcx/errors.go defines the failure taxonomy for
// platform calls. Callers classify with errors.Is/errors.As; raw platform
// errors never escape this package untranslated.
package cloudcx

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks absent or invalid client credential / region
	// configuration. Fatal to the calling operation, never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication marks a rejected credential exchange or an expired
	// token the platform refused.
	ErrAuthentication = errors.New("authentication failed")

	// ErrSchemaIncomplete marks a write refused because the table's primary
	// key could not be inferred, or the payload's key value is empty.
	ErrSchemaIncomplete = errors.New("table schema incomplete")

	// ErrNotFound marks a referenced entity, table, or row the platform
	// does not know.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an optimistic-concurrency or key collision the
	// platform reported. Surfaced, never silently retried.
	ErrConflict = errors.New("conflict")

	// ErrTimeout marks a call that exceeded its bounded deadline.
	ErrTimeout = errors.New("request timed out")
)

// DuplicateKeyError reports a row create that collided with an existing
// primary-key value.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("row with key %q already exists", e.Key)
}

func (*DuplicateKeyError) Unwrap() error { return ErrConflict }

// UpstreamError is any other platform failure. It preserves the platform's
// own message and trace id for support diagnosis.
type UpstreamError struct {
	StatusCode int
	Code       string
	Message    string
	TraceID    string
}

func (e *UpstreamError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("platform error %d (%s): %s [trace %s]",
			e.StatusCode, e.Code, e.Message, e.TraceID)
	}

	return fmt.Sprintf("platform error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}
