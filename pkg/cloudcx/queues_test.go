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
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoyant/cxdash/pkg/models"
)

const queueListBody = `{"entities": [
	{"id": "q1", "name": "Billing", "division": {"id": "d1", "name": "EMEA"}},
	{"id": "q2", "name": "Support"}
]}`

func TestListQueues_JoinsObservations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/routing/queues":
			_, _ = w.Write([]byte(queueListBody))
		case "/api/v2/analytics/queues/observations/query":
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			var query observationQueryRequest
			require.NoError(t, json.Unmarshal(body, &query))

			assert.Equal(t, "or", query.Filter.Type)
			require.Len(t, query.Filter.Predicates, 2)
			assert.Equal(t, "queueId", query.Filter.Predicates[0].Dimension)
			assert.ElementsMatch(t,
				[]string{metricOnQueueUsers, metricInteracting, metricWaiting}, query.Metrics)

			_, _ = w.Write([]byte(`{"results": [
				{
					"group": {"queueId": "q1"},
					"data": [
						{"metric": "oOnQueueUsers", "stats": {"count": 6}},
						{"metric": "oInteracting", "stats": {"count": 4}},
						{"metric": "oWaiting", "stats": {"count": 2}}
					]
				},
				{
					"group": {"queueId": "q-gone"},
					"data": [{"metric": "oWaiting", "stats": {"count": 50}}]
				}
			]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	queues, err := client.ListQueues(context.Background())
	require.NoError(t, err)
	require.Len(t, queues, 2)

	billing := queues[0]
	assert.Equal(t, 6, billing.OnQueueUsers)
	assert.Equal(t, 4, billing.Interacting)
	assert.Equal(t, 2, billing.Waiting)
	assert.Equal(t, models.DivisionRef{ID: "d1", Name: "EMEA"}, billing.Division)

	// No observation for q2: defaults retained, observation for the
	// deleted queue dropped without error.
	support := queues[1]
	assert.Zero(t, support.OnQueueUsers)
	assert.Zero(t, support.Interacting)
	assert.Zero(t, support.Waiting)
	assert.Equal(t, models.NotAvailable, support.Division.Name)
}

// A failed observations call degrades to default gauges; the queue list is
// more important than its live metrics.
func TestListQueues_ObservationFailureDegrades(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/routing/queues":
			_, _ = w.Write([]byte(queueListBody))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"analytics backend down"}`))
		}
	}))

	queues, err := client.ListQueues(context.Background())
	require.NoError(t, err)
	require.Len(t, queues, 2)

	for _, q := range queues {
		assert.Zero(t, q.OnQueueUsers)
		assert.Zero(t, q.Interacting)
		assert.Zero(t, q.Waiting)
	}
}

func TestListQueues_ListFailureIsFatal(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))

	_, err := client.ListQueues(context.Background())
	require.Error(t, err)

	var upstream *UpstreamError

	require.ErrorAs(t, err, &upstream)
}

func TestListQueues_EmptyListSkipsObservations(t *testing.T) {
	calls := 0

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"entities": []}`))
	}))

	queues, err := client.ListQueues(context.Background())
	require.NoError(t, err)
	assert.Empty(t, queues)
	assert.Equal(t, 1, calls)
}
