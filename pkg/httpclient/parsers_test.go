// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryAfterSeconds(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "7")
	assert.Equal(t, 7*time.Second, RetryAfter(headers))
}

func TestRetryAfterHTTPDate(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", time.Now().Add(30*time.Second).UTC().Format(http.TimeFormat))

	d := RetryAfter(headers)
	assert.Greater(t, d, 20*time.Second)
	assert.LessOrEqual(t, d, 30*time.Second)
}

func TestRetryAfterRateLimitReset(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-RateLimit-Reset", "0")
	assert.Equal(t, time.Duration(0), RetryAfter(headers), "past reset times are ignored")
}

func TestRetryAfterNoHint(t *testing.T) {
	assert.Equal(t, time.Duration(0), RetryAfter(http.Header{}))
}

func TestRetryAfterMalformed(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "soon")
	assert.Equal(t, time.Duration(0), RetryAfter(headers))
}
