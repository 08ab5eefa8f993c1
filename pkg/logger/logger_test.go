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

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	log, err := New(Config{Level: "error", Debug: true})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithOutput(&buf).WithComponent("cloudcx")
	log.Info().Str("request_id", "abc").Msg("fetching users")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "cloudcx", entry["component"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "fetching users", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewTestLogger_Discards(t *testing.T) {
	log := NewTestLogger()
	// Must not panic and must be fully disabled.
	log.Error().Msg("dropped")
	log.WithComponent("x").Warn().Msg("dropped")
}
