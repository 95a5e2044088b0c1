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

import (
	"github.com/gofiber/fiber/v2"
)

// Response 统一响应结构
// code 与标准 HTTP 语义一致（401/403/404/409…），即使传输层不是 HTTP
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Detail any    `json:"detail"`
}

// WithRepJSON 只返回json数据
func WithRepJSON(c *fiber.Ctx, detail any) error {
	return c.Status(Success.Code).JSON(Response{
		Code:   Success.Code,
		Status: Success.Status,
		Msg:    Success.Msg,
		Detail: detail,
	})
}

// WithRepMsg 返回自定义code, msg
func WithRepMsg(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(Response{
		Code:   code,
		Status: Success.Status,
		Msg:    msg,
	})
}

// WithRepNotDetail 只成功的返回操作结果
func WithRepNotDetail(c *fiber.Ctx) error {
	return c.Status(Success.Code).JSON(Response{
		Code:   Success.Code,
		Status: Success.Status,
		Msg:    Success.Msg,
	})
}

// WithRepDenied 以统一的拒绝结构返回，detail 恒为 null
func WithRepDenied(c *fiber.Ctx, resp *Response) error {
	return c.Status(resp.Code).JSON(Response{
		Code:   resp.Code,
		Status: resp.Status,
		Msg:    resp.Msg,
		Detail: nil,
	})
}
