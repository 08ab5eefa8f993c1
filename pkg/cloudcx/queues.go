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

// Queue observation metric names.
const (
	metricOnQueueUsers = "oOnQueueUsers"
	metricInteracting  = "oInteracting"
	metricWaiting      = "oWaiting"
)

// ListQueues fetches one page of routing queues and enriches them with live
// gauges from an observations query. The enrichment is best-effort: if the
// observations call fails, every queue comes back with zero gauges and the
// failure is only logged. The queue list itself matters more to the caller
// than its live metrics.
func (c *Client) ListQueues(ctx context.Context) ([]models.QueueRecord, error) {
	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(c.pageSize))

	var resp queueListResponse

	if err := c.do(ctx, http.MethodGet, "/api/v2/routing/queues", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list queues: %w", err)
	}

	queues := make([]models.QueueRecord, 0, len(resp.Entities))

	for i := range resp.Entities {
		raw := &resp.Entities[i]

		if raw.ID == "" {
			c.log.Warn().Str("name", raw.Name).Msg("Skipping queue entity with no id")
			continue
		}

		queues = append(queues, models.QueueRecord{
			ID:       raw.ID,
			Name:     raw.Name,
			Division: normalizeDivision(raw.Division),
		})
	}

	if len(queues) == 0 {
		return queues, nil
	}

	groups, err := c.queryQueueObservations(ctx, queues)
	if err != nil {
		// Degraded, not failed: the caller still gets the queue list.
		c.log.Warn().
			Err(err).
			Int("queue_count", len(queues)).
			Msg("Queue observations unavailable, returning default gauges")

		return queues, nil
	}

	joinObservations(queues, groups,
		func(q *models.QueueRecord) string { return q.ID },
		func(q *models.QueueRecord, metrics map[string]float64) {
			q.OnQueueUsers = int(metrics[metricOnQueueUsers])
			q.Interacting = int(metrics[metricInteracting])
			q.Waiting = int(metrics[metricWaiting])
		})

	return queues, nil
}

// queryQueueObservations posts an observations query filtered to the given
// queue ids and the three dashboard gauges.
func (c *Client) queryQueueObservations(ctx context.Context, queues []models.QueueRecord) ([]observationGroup, error) {
	const queueDimension = "queueId"

	predicates := make([]observationPredicate, 0, len(queues))
	for i := range queues {
		predicates = append(predicates, observationPredicate{
			Dimension: queueDimension,
			Value:     queues[i].ID,
		})
	}

	request := observationQueryRequest{
		Filter: observationFilter{
			Type:       "or",
			Predicates: predicates,
		},
		Metrics: []string{metricOnQueueUsers, metricInteracting, metricWaiting},
	}

	var resp observationQueryResponse

	err := c.do(ctx, http.MethodPost, "/api/v2/analytics/queues/observations/query", nil, request, &resp)
	if err != nil {
		return nil, err
	}

	return resolveObservationGroups(resp.Results, queueDimension), nil
}
