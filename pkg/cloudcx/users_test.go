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
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoyant/cxdash/pkg/models"
)

func TestListUsers_Normalization(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/users", r.URL.Path)
		assert.Equal(t, "presence,division,addresses", r.URL.Query().Get("expand"))
		assert.Equal(t, "100", r.URL.Query().Get("pageSize"))

		_, _ = w.Write([]byte(`{
			"entities": [
				{
					"id": "u1",
					"name": "Dana Ruiz",
					"email": "dana@example.com",
					"department": "Support",
					"title": "Agent",
					"version": 7,
					"division": {"id": "d1", "name": "EMEA"},
					"presence": {"presenceDefinition": {"systemPresence": "ON_QUEUE"}},
					"addresses": [
						{"mediaType": "EMAIL", "type": "PRIMARY", "address": "dana@example.com"},
						{"mediaType": "PHONE", "type": "WORK", "extension": "2001"},
						{"mediaType": "PHONE", "type": "PRIMARY", "extension": "1001"}
					]
				},
				{
					"id": "u2",
					"name": "No Presence",
					"presence": {"presenceDefinition": {"systemPresence": "HOLOGRAM"}}
				},
				{
					"name": "No ID, skipped"
				}
			],
			"pageSize": 100,
			"total": 3
		}`))
	}))

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	dana := users[0]
	assert.Equal(t, "u1", dana.ID)
	assert.Equal(t, models.PresenceOnQueue, dana.Status)
	assert.Equal(t, models.DivisionRef{ID: "d1", Name: "EMEA"}, dana.Division)
	// PRIMARY phone wins over the WORK phone listed before it.
	assert.Equal(t, "1001", dana.Extension)
	assert.Equal(t, 7, dana.Version)

	// Unknown presence defaults to Offline; absent division renders N/A.
	other := users[1]
	assert.Equal(t, models.PresenceOffline, other.Status)
	assert.Equal(t, models.NotAvailable, other.Division.ID)
	assert.Equal(t, models.NotAvailable, other.Division.Name)
	assert.Empty(t, other.Extension)
}

func TestExtensionOf_PreferenceOrder(t *testing.T) {
	primary := rawContactAddress{MediaType: "PHONE", Type: "PRIMARY", Extension: "100"}
	work := rawContactAddress{MediaType: "PHONE", Type: "WORK", Extension: "200"}
	primaryNoExt := rawContactAddress{MediaType: "PHONE", Type: "PRIMARY"}
	email := rawContactAddress{MediaType: "EMAIL", Type: "PRIMARY", Extension: "999"}

	// Tier 1: PRIMARY PHONE with an extension.
	assert.Equal(t, "100", extensionOf([]rawContactAddress{work, primary}))

	// Tier 2: first PHONE with an extension when no PRIMARY qualifies.
	assert.Equal(t, "200", extensionOf([]rawContactAddress{primaryNoExt, work}))

	// EMAIL entries never qualify, regardless of extension.
	assert.Empty(t, extensionOf([]rawContactAddress{email, primaryNoExt}))
	assert.Empty(t, extensionOf(nil))
}

func TestListDivisions(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/authorization/divisions", r.URL.Path)

		_, _ = w.Write([]byte(`{"entities": [{"id": "d1", "name": "EMEA"}, {"id": "d2"}]}`))
	}))

	divisions, err := client.ListDivisions(context.Background())
	require.NoError(t, err)
	require.Len(t, divisions, 2)
	assert.Equal(t, models.DivisionRef{ID: "d1", Name: "EMEA"}, divisions[0])
	assert.Equal(t, models.DivisionRef{ID: "d2", Name: models.NotAvailable}, divisions[1])
}

func TestPatchUserDivision(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v2/users/u1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, float64(7), payload["version"])
		assert.Equal(t, "d2", payload["divisionId"])

		_, _ = w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.PatchUserDivision(context.Background(), "u1", "d2", 7))
}

func TestPatchUserDivision_StaleVersion(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"version out of date"}`))
	}))

	err := client.PatchUserDivision(context.Background(), "u1", "d2", 2)
	require.ErrorIs(t, err, ErrConflict)
}
