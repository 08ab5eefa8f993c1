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
	"github.com/convoyant/cxdash/pkg/models"
)

// latestByMetric reduces an unordered bag of samples to the latest valid
// sample per named series. Samples missing a value or timestamp are
// disqualified; a series with no valid samples is absent from the result so
// callers render "not available" rather than zero. At identical timestamps
// the first sample seen wins, keeping the reduction stable in input order.
func latestByMetric(samples []rawMetricSample) map[string]models.MetricSample {
	out := make(map[string]models.MetricSample)

	for _, s := range samples {
		if s.Metric == "" || s.Value == nil || s.ObservedAt == nil {
			continue
		}

		if prev, ok := out[s.Metric]; ok && !s.ObservedAt.After(prev.ObservedAt) {
			continue
		}

		out[s.Metric] = models.MetricSample{
			Value:      *s.Value,
			ObservedAt: *s.ObservedAt,
		}
	}

	return out
}

// observationGroup is one resolved observation result: current gauge values
// keyed by metric name for a single entity id.
type observationGroup struct {
	GroupID string
	Metrics map[string]float64
}

// resolveObservationGroups flattens the platform's observation envelope,
// keyed by the given group dimension. Groups without that dimension or
// without stats are dropped.
func resolveObservationGroups(results []rawObservationGroup, dimension string) []observationGroup {
	groups := make([]observationGroup, 0, len(results))

	for _, r := range results {
		id := r.Group[dimension]
		if id == "" {
			continue
		}

		metrics := make(map[string]float64, len(r.Data))

		for _, d := range r.Data {
			if d.Metric == "" || d.Stats == nil || d.Stats.Count == nil {
				continue
			}

			metrics[d.Metric] = *d.Stats.Count
		}

		groups = append(groups, observationGroup{GroupID: id, Metrics: metrics})
	}

	return groups
}

// joinObservations overlays observation results onto a previously fetched
// entity list by key. Entities without a matching result keep their
// defaults; results whose key matches no entity are silently dropped, since
// the platform may report transient or deleted groups.
func joinObservations[E any](entities []E, results []observationGroup, keyOf func(*E) string, overlay func(*E, map[string]float64)) {
	byID := make(map[string]observationGroup, len(results))
	for _, r := range results {
		byID[r.GroupID] = r
	}

	for i := range entities {
		if group, ok := byID[keyOf(&entities[i])]; ok {
			overlay(&entities[i], group.Metrics)
		}
	}
}
