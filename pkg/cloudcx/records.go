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
	"time"

	"github.com/convoyant/cxdash/pkg/models"
)

// orEmpty substitutes the display sentinel for absent optional strings.
func orEmpty(s string) string {
	if s == "" {
		return models.NotAvailable
	}

	return s
}

// QueryAuditLog posts an audit-log query for the given interval (ISO-8601
// interval string) and returns normalized entries. Entries that cannot be
// mapped are skipped and logged, never abort the page.
func (c *Client) QueryAuditLog(ctx context.Context, interval string) ([]models.AuditEntry, error) {
	request := auditQueryRequest{
		Interval: interval,
		PageSize: c.pageSize,
	}

	var resp auditQueryResponse

	if err := c.do(ctx, http.MethodPost, "/api/v2/audits/query", nil, request, &resp); err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}

	entries := make([]models.AuditEntry, 0, len(resp.Entities))

	for i := range resp.Entities {
		raw := &resp.Entities[i]

		if raw.ID == "" {
			c.log.Warn().Msg("Skipping audit entry with no id")
			continue
		}

		entry := models.AuditEntry{
			ID:         raw.ID,
			Actor:      models.NotAvailable,
			Action:     orEmpty(raw.Action),
			EntityType: orEmpty(raw.EntityType),
			EntityName: models.NotAvailable,
			Status:     orEmpty(raw.Status),
		}

		if raw.User != nil && raw.User.Name != "" {
			entry.Actor = raw.User.Name
		}

		if raw.Entity != nil && raw.Entity.Name != "" {
			entry.EntityName = raw.Entity.Name
		}

		if raw.EventDate != nil {
			entry.Timestamp = *raw.EventDate
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// QueryConversations posts a conversation-detail query for the given
// interval and returns normalized summaries.
func (c *Client) QueryConversations(ctx context.Context, interval string) ([]models.ConversationSummary, error) {
	request := conversationQueryRequest{Interval: interval}
	request.Paging.PageSize = c.pageSize
	request.Paging.PageNumber = 1

	var resp conversationQueryResponse

	err := c.do(ctx, http.MethodPost, "/api/v2/analytics/conversations/details/query", nil, request, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}

	summaries := make([]models.ConversationSummary, 0, len(resp.Conversations))

	for i := range resp.Conversations {
		raw := &resp.Conversations[i]

		if raw.ConversationID == "" {
			c.log.Warn().Msg("Skipping conversation with no id")
			continue
		}

		summary := models.ConversationSummary{
			ID:               raw.ConversationID,
			End:              raw.ConversationEnd,
			MediaType:        orEmpty(primaryMediaType(raw.Participants)),
			Direction:        orEmpty(raw.OriginatingDirection),
			QueueName:        orEmpty(raw.QueueName),
			ParticipantCount: len(raw.Participants),
		}

		if raw.ConversationStart != nil {
			summary.Start = *raw.ConversationStart
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// primaryMediaType prefers the first participant's first session's media
// type; when that summary lacks one, it re-inspects the full participant
// list for any populated value before giving up.
func primaryMediaType(participants []rawParticipant) string {
	if len(participants) > 0 && len(participants[0].Sessions) > 0 {
		if mt := participants[0].Sessions[0].MediaType; mt != "" {
			return mt
		}
	}

	for _, p := range participants {
		for _, s := range p.Sessions {
			if s.MediaType != "" {
				return s.MediaType
			}
		}
	}

	return ""
}

// Interval formats a platform query interval from two instants.
func Interval(start, end time.Time) string {
	return start.UTC().Format(time.RFC3339) + "/" + end.UTC().Format(time.RFC3339)
}
