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

// Package models defines the stable records the dashboard renders. Every type
// here is fully defaulted: raw platform payloads never reach a page component.
package models

import "strings"

// PresenceStatus is the closed set of user availability states.
type PresenceStatus string

const (
	PresenceAvailable PresenceStatus = "Available"
	PresenceBusy      PresenceStatus = "Busy"
	PresenceAway      PresenceStatus = "Away"
	PresenceOnQueue   PresenceStatus = "On Queue"
	PresenceMeeting   PresenceStatus = "Meeting"
	PresenceOffline   PresenceStatus = "Offline"
)

// PresenceStatusFromPlatform maps a raw platform presence value onto the
// closed status set. The match is case-insensitive. Unrecognized or absent
// values map to Offline with ok=false so the caller can log them; the
// function itself never fails.
func PresenceStatusFromPlatform(raw string) (status PresenceStatus, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "AVAILABLE", "IDLE":
		return PresenceAvailable, true
	case "BUSY", "MEAL", "TRAINING":
		return PresenceBusy, true
	case "AWAY", "BREAK":
		return PresenceAway, true
	case "ON_QUEUE", "ON QUEUE":
		return PresenceOnQueue, true
	case "MEETING":
		return PresenceMeeting, true
	case "OFFLINE":
		return PresenceOffline, true
	default:
		return PresenceOffline, false
	}
}

// NotAvailable is the display sentinel for fields the platform did not
// populate. It distinguishes "loaded but empty" from an error state.
const NotAvailable = "N/A"

// DivisionRef is an id+name pair used purely as a foreign-key display pair.
type DivisionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PresenceRecord is the normalized projection of a platform user.
type PresenceRecord struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Status     PresenceStatus `json:"status"`
	Division   DivisionRef    `json:"division"`
	Email      string         `json:"email"`
	Department string         `json:"department"`
	Title      string         `json:"title"`
	Extension  string         `json:"extension"`

	// Version is the platform's optimistic-concurrency stamp; division
	// patches must send it back unchanged.
	Version int `json:"version"`
}
