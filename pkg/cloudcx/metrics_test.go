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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoyant/cxdash/pkg/models"
)

func samplePtr(v float64) *float64   { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestLatestByMetric_KeepsLatestPerSeries(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	samples := []rawMetricSample{
		{Metric: "cpuUsage", Value: samplePtr(40), ObservedAt: timePtr(t2)},
		{Metric: "cpuUsage", Value: samplePtr(85), ObservedAt: timePtr(t1)},
		{Metric: "memoryUsage", Value: samplePtr(60), ObservedAt: timePtr(t1)},
	}

	latest := latestByMetric(samples)

	require.Len(t, latest, 2)
	assert.Equal(t, 40.0, latest["cpuUsage"].Value)
	assert.Equal(t, t2, latest["cpuUsage"].ObservedAt)
	assert.Equal(t, 60.0, latest["memoryUsage"].Value)
}

func TestLatestByMetric_DisqualifiesIncompleteSamples(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	samples := []rawMetricSample{
		{Metric: "rtt", Value: nil, ObservedAt: timePtr(t1)},
		{Metric: "rtt", Value: samplePtr(12), ObservedAt: nil},
		{Metric: "", Value: samplePtr(1), ObservedAt: timePtr(t1)},
	}

	// A series with no valid samples is absent, not zero.
	latest := latestByMetric(samples)
	assert.Empty(t, latest)
}

func TestLatestByMetric_TieBreakIsStable(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	samples := []rawMetricSample{
		{Metric: "cpuUsage", Value: samplePtr(10), ObservedAt: timePtr(t1)},
		{Metric: "cpuUsage", Value: samplePtr(99), ObservedAt: timePtr(t1)},
	}

	// First sample seen wins at identical timestamps.
	latest := latestByMetric(samples)
	assert.Equal(t, 10.0, latest["cpuUsage"].Value)
}

func TestResolveObservationGroups(t *testing.T) {
	count := 7.0

	results := []rawObservationGroup{
		{
			Group: map[string]string{"queueId": "q1"},
			Data: []rawObservationData{
				{Metric: "oWaiting", Stats: &rawObservationStats{Count: &count}},
				{Metric: "oInteracting", Stats: nil},
				{Metric: "", Stats: &rawObservationStats{Count: &count}},
			},
		},
		{Group: map[string]string{"wrongDimension": "x"}},
	}

	groups := resolveObservationGroups(results, "queueId")

	require.Len(t, groups, 1)
	assert.Equal(t, "q1", groups[0].GroupID)
	assert.Equal(t, map[string]float64{"oWaiting": 7}, groups[0].Metrics)
}

func TestJoinObservations(t *testing.T) {
	queues := []models.QueueRecord{
		{ID: "q1", Name: "Billing"},
		{ID: "q2", Name: "Support"},
	}

	groups := []observationGroup{
		{GroupID: "q1", Metrics: map[string]float64{"oWaiting": 4, "oInteracting": 2}},
		// Unknown id: the platform may report transient or deleted groups.
		{GroupID: "q-deleted", Metrics: map[string]float64{"oWaiting": 99}},
	}

	joinObservations(queues, groups,
		func(q *models.QueueRecord) string { return q.ID },
		func(q *models.QueueRecord, metrics map[string]float64) {
			q.Waiting = int(metrics["oWaiting"])
			q.Interacting = int(metrics["oInteracting"])
		})

	// Matched entity reflects exactly the joined values.
	assert.Equal(t, 4, queues[0].Waiting)
	assert.Equal(t, 2, queues[0].Interacting)

	// Unmatched entity keeps zero defaults.
	assert.Zero(t, queues[1].Waiting)
	assert.Zero(t, queues[1].Interacting)
	assert.Zero(t, queues[1].OnQueueUsers)
}
