package handler

import (
	"errors"
	"strconv"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// repFor 业务错误到响应目录的映射，未识别的错误一律按服务器错误处理
func repFor(err error) *http.Response {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.NotFound
	case errors.Is(err, errs.ErrConflict):
		return http.Conflict
	case errors.Is(err, errs.ErrStructural):
		return http.StructuralError
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.AuthenticationFailed
	default:
		return http.InternalError
	}
}

func fail(c *fiber.Ctx, err error) error {
	rep := repFor(err)
	if rep == http.InternalError {
		// 内部细节不回传客户端
		return http.WithRepErrMsg(c, rep, c.Path())
	}
	return http.WithRepErr(c, rep.Code, err.Error(), c.Path())
}

func badRequest(c *fiber.Ctx) error {
	return http.WithRepErrMsg(c, http.RequestParameterParsingFailed, c.Path())
}

// paramUint64 解析路径参数里的数字ID
func paramUint64(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

func paramQueryUint64(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
