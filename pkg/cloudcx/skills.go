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
	"sort"
	"strconv"

	"github.com/convoyant/cxdash/pkg/models"
)

// ListSkills fetches the platform-wide routing skill catalog.
func (c *Client) ListSkills(ctx context.Context) ([]models.RoutingSkill, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))

	var resp skillListResponse

	if err := c.do(ctx, http.MethodGet, "/api/v2/routing/skills", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	skills := make([]models.RoutingSkill, 0, len(resp.Entities))

	for _, e := range resp.Entities {
		id := e.ID
		if e.SkillID != "" {
			id = e.SkillID
		}

		if id == "" {
			c.log.Warn().Str("name", e.Name).Msg("Skipping skill entity with no id")
			continue
		}

		skills = append(skills, models.RoutingSkill{ID: id, Name: e.Name})
	}

	return skills, nil
}

// GetUserSkills fetches a user's current skill set. This is the
// authoritative set the UI's working copy is edited from.
func (c *Client) GetUserSkills(ctx context.Context, userID string) ([]models.SkillAssignment, error) {
	path := fmt.Sprintf("/api/v2/users/%s/routingskills", url.PathEscape(userID))

	var resp skillListResponse

	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get skills for user %s: %w", userID, err)
	}

	return c.normalizeSkillAssignments(resp.Entities), nil
}

// ReplaceUserSkills submits the entire desired skill map as one idempotent
// replace. Proficiencies outside [1,5] are corrected, not rejected. The
// returned set is the platform's authoritative post-write state; callers
// adopt it as the new working set.
func (c *Client) ReplaceUserSkills(ctx context.Context, userID string, desired map[string]int) ([]models.SkillAssignment, error) {
	type skillWrite struct {
		ID          string `json:"id"`
		Proficiency int    `json:"proficiency"`
	}

	writes := make([]skillWrite, 0, len(desired))

	for id, proficiency := range desired {
		writes = append(writes, skillWrite{
			ID:          id,
			Proficiency: models.ClampProficiency(proficiency),
		})
	}

	// Deterministic wire order; the platform treats the list as a set.
	sort.Slice(writes, func(i, j int) bool { return writes[i].ID < writes[j].ID })

	path := fmt.Sprintf("/api/v2/users/%s/routingskills/bulk", url.PathEscape(userID))

	var resp skillListResponse

	if err := c.do(ctx, http.MethodPut, path, nil, writes, &resp); err != nil {
		return nil, fmt.Errorf("failed to replace skills for user %s: %w", userID, err)
	}

	c.log.Info().
		Str("user_id", userID).
		Int("skill_count", len(writes)).
		Msg("Replaced user skill set")

	return c.normalizeSkillAssignments(resp.Entities), nil
}

func (c *Client) normalizeSkillAssignments(entities []rawRoutingSkill) []models.SkillAssignment {
	assignments := make([]models.SkillAssignment, 0, len(entities))
	seen := make(map[string]bool, len(entities))

	for _, e := range entities {
		id := e.ID
		if e.SkillID != "" {
			id = e.SkillID
		}

		if id == "" || seen[id] {
			c.log.Warn().
				Str("name", e.Name).
				Str("skill_id", id).
				Msg("Skipping duplicate or id-less skill assignment")

			continue
		}

		seen[id] = true

		proficiency := 1
		if e.Proficiency != nil {
			proficiency = models.ClampProficiency(*e.Proficiency)
		}

		assignments = append(assignments, models.SkillAssignment{
			ID:          id,
			Name:        e.Name,
			Proficiency: proficiency,
		})
	}

	return assignments
}
