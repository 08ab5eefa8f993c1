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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionSection struct {
	ClientID string `json:"client_id"`
	Region   string `json:"region"`
}

type testConfig struct {
	Session  sessionSection `json:"session"`
	PageSize int            `json:"page_size"`
	Debug    bool           `json:"debug"`

	validateErr error
}

func (c *testConfig) Validate() error { return c.validateErr }

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cxdash.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate_FromFile(t *testing.T) {
	path := writeTestConfig(t, `{
		"session": {"client_id": "abc", "region": "us-east-1"},
		"page_size": 50,
		"debug": true
	}`)

	var cfg testConfig

	require.NoError(t, NewConfig().LoadAndValidate(context.Background(), path, &cfg))
	assert.Equal(t, "abc", cfg.Session.ClientID)
	assert.Equal(t, "us-east-1", cfg.Session.Region)
	assert.Equal(t, 50, cfg.PageSize)
	assert.True(t, cfg.Debug)
}

func TestLoadAndValidate_FileMissing(t *testing.T) {
	var cfg testConfig

	err := NewConfig().LoadAndValidate(context.Background(), "/nonexistent/cxdash.json", &cfg)
	require.Error(t, err)
}

func TestLoadAndValidate_ValidatorFailure(t *testing.T) {
	path := writeTestConfig(t, `{}`)

	sentinel := errors.New("missing client id")
	cfg := testConfig{validateErr: sentinel}

	err := NewConfig().LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, sentinel)
}

func TestLoadAndValidate_InvalidSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "carrier-pigeon")

	var cfg testConfig

	err := NewConfig().LoadAndValidate(context.Background(), "ignored", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestEnvConfigLoader(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CXDASH_SESSION_CLIENT_ID", "env-client")
	t.Setenv("CXDASH_SESSION_REGION", "eu-west-1")
	t.Setenv("CXDASH_PAGE_SIZE", "25")
	t.Setenv("CXDASH_DEBUG", "true")

	var cfg testConfig

	require.NoError(t, NewConfig().LoadAndValidate(context.Background(), "", &cfg))
	assert.Equal(t, "env-client", cfg.Session.ClientID)
	assert.Equal(t, "eu-west-1", cfg.Session.Region)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.Debug)
}

func TestEnvConfigLoader_RejectsNonPointer(t *testing.T) {
	loader := NewEnvConfigLoader("CXDASH_")

	err := loader.Load(context.Background(), "", testConfig{})
	require.ErrorIs(t, err, ErrDstMustBeNonNilPointer)

	var n int

	err = loader.Load(context.Background(), "", &n)
	require.ErrorIs(t, err, ErrDstMustBePointerToStruct)
}
