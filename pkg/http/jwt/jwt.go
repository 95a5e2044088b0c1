package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-atrium/atrium/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:02
 * @file: jwt.go
 * @description: token issue/parse with failure cause taxonomy
 */

type AuthClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

// Cause 细分的令牌校验失败原因
// 同时驱动拒绝响应与 SecurityMetrics 维度，不可合并
type Cause string

const (
	CauseSignature   Cause = "invalid_signature"
	CauseExpired     Cause = "expired"
	CauseUnsupported Cause = "unsupported"
	CauseMalformed   Cause = "malformed"
)

// CauseError carries the failure cause alongside the underlying error.
type CauseError struct {
	Cause Cause
	Err   error
}

func (e *CauseError) Error() string {
	return fmt.Sprintf("token invalid (%s): %v", e.Cause, e.Err)
}

func (e *CauseError) Unwrap() error {
	return e.Err
}

// NewCauseError wraps err with a validation failure cause.
func NewCauseError(cause Cause, err error) *CauseError {
	return &CauseError{Cause: cause, Err: err}
}

// CauseOf extracts the failure cause from err, false if err is not a token error.
func CauseOf(err error) (Cause, bool) {
	var ce *CauseError
	if errors.As(err, &ce) {
		return ce.Cause, true
	}
	return "", false
}

var issuer = "atrium"

// GenToken 生成 access_token
func GenToken(userId string, secretKey []byte, accessExpire time.Duration) (string, error) {
	claims := &AuthClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer, // 签发人
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpire * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now()),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			// iat/exp 只有秒级精度，jti 保证同秒连发的令牌也两两不同，
			// 会话覆盖依赖新旧令牌可区分
			ID: id.GetUUID(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ParseToken 校验 access_token，失败时返回 *CauseError
func ParseToken(aToken, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, func(token *jwt.Token) (any, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, NewCauseError(classify(err), err)
	}

	if !token.Valid {
		return nil, NewCauseError(CauseMalformed, errors.New("invalid token"))
	}

	return claims, nil
}

// classify maps jwt/v5 sentinel errors onto the four-cause taxonomy.
func classify(err error) Cause {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return CauseMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// keyfunc 拒绝了签名算法
		return CauseUnsupported
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return CauseSignature
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return CauseExpired
	default:
		return CauseMalformed
	}
}
