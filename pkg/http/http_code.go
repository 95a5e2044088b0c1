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

package http

var (
	Success = ok(200, "OK", "request success")

	// BadRequest 400
	BadRequest                    = failed(400, "BAD_REQUEST", "bad request")
	RequestParameterParsingFailed = failed(400, "BAD_REQUEST", "request parameter parsing failed")
	StructuralError               = failed(400, "STRUCTURAL_ERROR", "structural error")

	// Unauthenticated 401
	Unauthenticated       = failed(401, "UNAUTHENTICATED", "authorization is empty")
	TokenMalformed        = failed(401, "TOKEN_MALFORMED", "token is malformed")
	TokenUnsupported      = failed(401, "TOKEN_UNSUPPORTED", "token format or algorithm is unsupported")
	TokenSignatureInvalid = failed(401, "TOKEN_SIGNATURE_INVALID", "token signature is invalid")
	TokenExpired          = failed(401, "TOKEN_EXPIRED", "token is expired")
	AuthenticationFailed  = failed(401, "AUTHENTICATION_FAILED", "login id or password is incorrect")

	// Forbidden 403
	Forbidden = failed(403, "FORBIDDEN", "permission denied")

	// NotFound 404
	NotFound        = failed(404, "NOT_FOUND", "not found")
	ResourceUnknown = failed(404, "RESOURCE_UNKNOWN", "no resource matches the declared page id")

	// Conflict 409
	Conflict = failed(409, "CONFLICT", "resource already exists")

	InternalError = failed(500, "INTERNAL_ERROR", "internal error, please contact the administrator")
)

// failed 构造函数
func failed(code int, status, msg string) *Response {
	return &Response{
		Code:   code,
		Status: status,
		Msg:    msg,
	}
}

// ok 构造函数
func ok(code int, status, msg string) *Response {
	return &Response{
		Code:   code,
		Status: status,
		Msg:    msg,
	}
}
