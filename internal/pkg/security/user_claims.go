package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中携带的用户信息，Token 由账号服务签发
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
