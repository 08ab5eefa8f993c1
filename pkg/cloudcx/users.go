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
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/convoyant/cxdash/pkg/models"
)

// ListUsers fetches one page of users with presence, division, and contact
// info expanded, normalized into PresenceRecords. A user that cannot be
// mapped is skipped and logged; it never aborts the rest of the page.
func (c *Client) ListUsers(ctx context.Context) ([]models.PresenceRecord, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("expand", "presence,division,addresses")

	var resp userListResponse

	if err := c.do(ctx, http.MethodGet, "/api/v2/users", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	records := make([]models.PresenceRecord, 0, len(resp.Entities))

	for i := range resp.Entities {
		record, ok := c.normalizeUser(&resp.Entities[i])
		if !ok {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// normalizeUser projects a raw user onto the stable record. Returns
// ok=false only when the entity carries no id at all.
func (c *Client) normalizeUser(raw *rawUser) (models.PresenceRecord, bool) {
	if raw.ID == "" {
		c.log.Warn().
			Str("name", raw.Name).
			Msg("Skipping user entity with no id")

		return models.PresenceRecord{}, false
	}

	record := models.PresenceRecord{
		ID:         raw.ID,
		Name:       raw.Name,
		Status:     c.presenceOf(raw),
		Division:   normalizeDivision(raw.Division),
		Email:      raw.Email,
		Department: raw.Department,
		Title:      raw.Title,
		Extension:  extensionOf(raw.PrimaryPhone),
		Version:    raw.Version,
	}

	return record, true
}

func (c *Client) presenceOf(raw *rawUser) models.PresenceStatus {
	var system string

	if raw.Presence != nil && raw.Presence.PresenceDefinition != nil {
		system = raw.Presence.PresenceDefinition.SystemPresence
	}

	status, ok := models.PresenceStatusFromPlatform(system)
	if !ok {
		c.log.Warn().
			Str("user_id", raw.ID).
			Str("raw_presence", system).
			Msg("Unrecognized presence value, defaulting to Offline")
	}

	return status
}

// normalizeDivision applies the N/A sentinel for absent division fields,
// distinguishing "loaded but empty" from an error state.
func normalizeDivision(raw *rawDivision) models.DivisionRef {
	ref := models.DivisionRef{ID: models.NotAvailable, Name: models.NotAvailable}

	if raw == nil {
		return ref
	}

	if raw.ID != "" {
		ref.ID = raw.ID
	}

	if raw.Name != "" {
		ref.Name = raw.Name
	}

	return ref
}

// extensionOf picks a user's extension from their contact channels: prefer
// the PRIMARY PHONE entry carrying an extension, else the first PHONE entry
// carrying one. The two-tier preference order is load-bearing; dashboards
// built on it expect the primary line to win.
func extensionOf(addresses []rawContactAddress) string {
	for _, a := range addresses {
		if a.MediaType == "PHONE" && a.Type == "PRIMARY" && a.Extension != "" {
			return a.Extension
		}
	}

	for _, a := range addresses {
		if a.MediaType == "PHONE" && a.Extension != "" {
			return a.Extension
		}
	}

	return ""
}

// ListDivisions fetches the division catalog backing the division picker.
func (c *Client) ListDivisions(ctx context.Context) ([]models.DivisionRef, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))

	var resp divisionListResponse

	if err := c.do(ctx, http.MethodGet, "/api/v2/authorization/divisions", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}

	divisions := make([]models.DivisionRef, 0, len(resp.Entities))

	for i := range resp.Entities {
		divisions = append(divisions, normalizeDivision(&resp.Entities[i]))
	}

	return divisions, nil
}

// PatchUserDivision moves a user to another division. The caller supplies
// the user's current version stamp; a stale stamp surfaces as ErrConflict,
// never a silent retry.
func (c *Client) PatchUserDivision(ctx context.Context, userID, divisionID string, version int) error {
	body := struct {
		Version    int    `json:"version"`
		DivisionID string `json:"divisionId"`
	}{
		Version:    version,
		DivisionID: divisionID,
	}

	path := fmt.Sprintf("/api/v2/users/%s", url.PathEscape(userID))

	if err := c.do(ctx, http.MethodPatch, path, nil, body, nil); err != nil {
		return fmt.Errorf("failed to patch division for user %s: %w", userID, err)
	}

	return nil
}
