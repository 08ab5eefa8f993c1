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

package models

import (
	"strings"
	"time"
)

// EdgeStatus is the derived operational state of a telephony edge appliance.
type EdgeStatus string

const (
	EdgeOnline   EdgeStatus = "Online"
	EdgeOffline  EdgeStatus = "Offline"
	EdgeDegraded EdgeStatus = "Degraded"
	EdgeUnknown  EdgeStatus = "Unknown"
)

// EdgeStatusFromPlatform derives an EdgeStatus from the platform's coarse
// state plus its online sub-status. ACTIVE edges dispatch on the sub-status,
// INACTIVE edges are Offline, anything else (including both absent) is
// Unknown. Total function.
func EdgeStatusFromPlatform(state, onlineStatus string) EdgeStatus {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case "ACTIVE":
		switch strings.ToUpper(strings.TrimSpace(onlineStatus)) {
		case "ONLINE":
			return EdgeOnline
		case "DEGRADED":
			return EdgeDegraded
		case "OFFLINE":
			return EdgeOffline
		default:
			return EdgeUnknown
		}
	case "INACTIVE":
		return EdgeOffline
	default:
		return EdgeUnknown
	}
}

// MetricSample is a single observed value for a named series. ObservedAt is
// the platform-side timestamp, not the time we fetched it.
type MetricSample struct {
	Value      float64   `json:"value"`
	ObservedAt time.Time `json:"observed_at"`
}

// EdgeRecord is the normalized projection of an edge appliance. Metric
// pointers are nil when the platform reported no valid sample for the
// series; callers render that as not-available, never as zero.
type EdgeRecord struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Status          EdgeStatus    `json:"status"`
	Make            string        `json:"make"`
	Model           string        `json:"model"`
	SoftwareVersion string        `json:"software_version"`
	CPU             *MetricSample `json:"cpu,omitempty"`
	Memory          *MetricSample `json:"memory,omitempty"`
	RTT             *MetricSample `json:"rtt,omitempty"`
}
