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

// RoutingSkill is one entry of the platform-wide skill catalog.
type RoutingSkill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SkillAssignment is one routing skill held by a user. Proficiency is
// always within [1,5] after normalization.
type SkillAssignment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"`
}

// ClampProficiency corrects an out-of-range proficiency rather than
// rejecting it.
func ClampProficiency(p int) int {
	const (
		minProficiency = 1
		maxProficiency = 5
	)

	if p < minProficiency {
		return minProficiency
	}

	if p > maxProficiency {
		return maxProficiency
	}

	return p
}
