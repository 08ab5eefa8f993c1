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
	"encoding/json"
	"time"
)

// Raw wire shapes. Every field the platform may omit is a pointer or has a
// workable zero value; normalization functions in this package are the only
// consumers.

type rawDivision struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawContactAddress struct {
	MediaType string `json:"mediaType"`
	Type      string `json:"type"`
	Address   string `json:"address"`
	Extension string `json:"extension"`
}

type rawPresence struct {
	PresenceDefinition *struct {
		SystemPresence string `json:"systemPresence"`
	} `json:"presenceDefinition"`
}

type rawUser struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Department   string              `json:"department"`
	Title        string              `json:"title"`
	Version      int                 `json:"version"`
	Division     *rawDivision        `json:"division"`
	Presence     *rawPresence        `json:"presence"`
	PrimaryPhone []rawContactAddress `json:"addresses"`
}

type userListResponse struct {
	Entities   []rawUser `json:"entities"`
	PageSize   int       `json:"pageSize"`
	PageNumber int       `json:"pageNumber"`
	Total      int       `json:"total"`
}

type divisionListResponse struct {
	Entities []rawDivision `json:"entities"`
}

type rawRoutingSkill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency *int   `json:"proficiency"`

	// User-skill entries nest the skill id under a separate field on some
	// API versions; prefer it when present.
	SkillID string `json:"skillId"`
}

type skillListResponse struct {
	Entities []rawRoutingSkill `json:"entities"`
}

// rawSchemaProperty's type field is either a bare string or a nested
// {"type": "..."} object; resolveColumnType unwraps it.
type rawSchemaProperty struct {
	Type  json.RawMessage `json:"type"`
	Title string          `json:"title"`
}

type rawTableSchema struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Key         string                       `json:"key"`
	Required    []string                     `json:"required"`
	Properties  map[string]rawSchemaProperty `json:"properties"`
}

type tableListResponse struct {
	Entities []rawTableSchema `json:"entities"`
}

type rawTableRow = map[string]interface{}

type rowListResponse struct {
	Entities []rawTableRow `json:"entities"`
}

type rawQueue struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Division *rawDivision `json:"division"`
}

type queueListResponse struct {
	Entities []rawQueue `json:"entities"`
}

// Observation query shapes: results group current gauge values by entity id.

type observationQueryRequest struct {
	Filter  observationFilter `json:"filter"`
	Metrics []string          `json:"metrics"`
}

type observationFilter struct {
	Type       string                `json:"type"`
	Predicates []observationPredicate `json:"predicates"`
}

type observationPredicate struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

type rawObservationGroup struct {
	Group map[string]string    `json:"group"`
	Data  []rawObservationData `json:"data"`
}

type rawObservationStats struct {
	Count *float64 `json:"count"`
}

type rawObservationData struct {
	Metric string               `json:"metric"`
	Stats  *rawObservationStats `json:"stats"`
}

type observationQueryResponse struct {
	Results []rawObservationGroup `json:"results"`
}

type rawEdge struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	State           string `json:"state"`
	OnlineStatus    string `json:"onlineStatus"`
	Make            string `json:"make"`
	Model           string `json:"model"`
	SoftwareVersion string `json:"softwareVersion"`
}

type edgeListResponse struct {
	Entities []rawEdge `json:"entities"`
}

// rawMetricSample is one timestamped sample of a named series. Samples
// arrive unordered; only the latest per series matters. Value or timestamp
// may be absent, which disqualifies the sample.
type rawMetricSample struct {
	Metric     string     `json:"metric"`
	Value      *float64   `json:"value"`
	ObservedAt *time.Time `json:"observedAt"`
}

type edgeMetricsResponse struct {
	Samples []rawMetricSample `json:"samples"`
}

type auditQueryRequest struct {
	Interval string `json:"interval"`
	PageSize int    `json:"pageSize"`
}

type rawAuditEntry struct {
	ID   string `json:"id"`
	User *struct {
		Name string `json:"name"`
	} `json:"user"`
	Action     string `json:"action"`
	EntityType string `json:"entityType"`
	Entity     *struct {
		Name string `json:"name"`
	} `json:"entity"`
	Status    string     `json:"status"`
	EventDate *time.Time `json:"eventDate"`
}

type auditQueryResponse struct {
	Entities []rawAuditEntry `json:"entities"`
}

type conversationQueryRequest struct {
	Interval string `json:"interval"`
	Paging   struct {
		PageSize   int `json:"pageSize"`
		PageNumber int `json:"pageNumber"`
	} `json:"paging"`
}

type rawSession struct {
	MediaType string `json:"mediaType"`
}

type rawParticipant struct {
	Purpose  string       `json:"purpose"`
	Sessions []rawSession `json:"sessions"`
}

type rawConversation struct {
	ConversationID       string           `json:"conversationId"`
	ConversationStart    *time.Time       `json:"conversationStart"`
	ConversationEnd      *time.Time       `json:"conversationEnd"`
	OriginatingDirection string           `json:"originatingDirection"`
	QueueName            string           `json:"queueName"`
	Participants         []rawParticipant `json:"participants"`
}

type conversationQueryResponse struct {
	Conversations []rawConversation `json:"conversations"`
}
