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

// Edge metric series names.
const (
	metricEdgeCPU    = "cpuUsage"
	metricEdgeMemory = "memoryUsage"
	metricEdgeRTT    = "rtt"
)

// ListEdges fetches the telephony edge inventory with derived status and the
// latest performance sample per series. A failed metrics sub-call degrades
// that edge to "no samples" and is only logged; edges are more important to
// the caller than their live metrics.
func (c *Client) ListEdges(ctx context.Context) ([]models.EdgeRecord, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))

	var resp edgeListResponse

	if err := c.do(ctx, http.MethodGet, "/api/v2/telephony/providers/edges", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list edges: %w", err)
	}

	edges := make([]models.EdgeRecord, 0, len(resp.Entities))

	for i := range resp.Entities {
		raw := &resp.Entities[i]

		if raw.ID == "" {
			c.log.Warn().Str("name", raw.Name).Msg("Skipping edge entity with no id")
			continue
		}

		edge := models.EdgeRecord{
			ID:              raw.ID,
			Name:            raw.Name,
			Status:          models.EdgeStatusFromPlatform(raw.State, raw.OnlineStatus),
			Make:            raw.Make,
			Model:           raw.Model,
			SoftwareVersion: raw.SoftwareVersion,
		}

		c.attachEdgeMetrics(ctx, &edge)
		edges = append(edges, edge)
	}

	return edges, nil
}

// attachEdgeMetrics reduces the edge's unordered sample bag to the latest
// value per series. Absent series stay nil so callers render not-available,
// never zero.
func (c *Client) attachEdgeMetrics(ctx context.Context, edge *models.EdgeRecord) {
	path := fmt.Sprintf("/api/v2/telephony/providers/edges/%s/metrics", url.PathEscape(edge.ID))

	var resp edgeMetricsResponse

	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		c.log.Warn().
			Err(err).
			Str("edge_id", edge.ID).
			Msg("Edge metrics unavailable, returning edge without samples")

		return
	}

	latest := latestByMetric(resp.Samples)

	if sample, ok := latest[metricEdgeCPU]; ok {
		s := sample
		edge.CPU = &s
	}

	if sample, ok := latest[metricEdgeMemory]; ok {
		s := sample
		edge.Memory = &s
	}

	if sample, ok := latest[metricEdgeRTT]; ok {
		s := sample
		edge.RTT = &s
	}
}
