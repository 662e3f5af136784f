package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/neonflick/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"wallet"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken returns ErrWalletBlocked when the wallet is on the blocklist
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
