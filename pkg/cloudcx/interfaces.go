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
	"net/http"
)

//go:generate mockgen -destination=mock_cloudcx.go -package=cloudcx github.com/convoyant/cxdash/pkg/cloudcx HTTPClient,TokenProvider,TokenSource

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenProvider performs one credential exchange against the platform's
// login host.
type TokenProvider interface {
	Exchange(ctx context.Context) (Credential, error)
}

// TokenSource yields a live bearer token for outbound calls, exchanging or
// re-exchanging credentials as needed.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
