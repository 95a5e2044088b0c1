// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Token failure causes, used as the "cause" label value.
// 与 pkg/http/jwt 的失败分类一一对应
const (
	CauseSignature   = "invalid_signature"
	CauseExpired     = "expired"
	CauseUnsupported = "unsupported"
	CauseMalformed   = "malformed"
)

var (
	// TokenFailuresTotal counts token validation failures per cause.
	TokenFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_failures_total",
			Help: "Total number of token validation failures by cause",
		},
		[]string{"cause"},
	)

	// GuardDecisionsTotal counts guard middleware outcomes.
	GuardDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_decisions_total",
			Help: "Total number of guard decisions by outcome",
		},
		[]string{"outcome"},
	)
)

// Guard decision outcomes.
const (
	OutcomeAllow           = "allow"
	OutcomeUnauthenticated = "deny_unauthenticated"
	OutcomeTokenInvalid    = "deny_token_invalid"
	OutcomeUnknownResource = "deny_unknown_resource"
	OutcomeForbidden       = "deny_forbidden"
)

var registerOnce sync.Once

// Register registers all collectors on the default registry.
// 计数器预先初始化为 0，外部监控可以立即看到全部维度
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(TokenFailuresTotal, GuardDecisionsTotal)

		for _, cause := range []string{CauseSignature, CauseExpired, CauseUnsupported, CauseMalformed} {
			TokenFailuresTotal.WithLabelValues(cause)
		}
		for _, outcome := range []string{
			OutcomeAllow, OutcomeUnauthenticated, OutcomeTokenInvalid,
			OutcomeUnknownResource, OutcomeForbidden,
		} {
			GuardDecisionsTotal.WithLabelValues(outcome)
		}
	})
}

// RecordTokenFailure increments the counter for one failure cause.
func RecordTokenFailure(cause string) {
	TokenFailuresTotal.WithLabelValues(cause).Inc()
}

// RecordGuardDecision increments the counter for one guard outcome.
func RecordGuardDecision(outcome string) {
	GuardDecisionsTotal.WithLabelValues(outcome).Inc()
}
