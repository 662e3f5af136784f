package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/blocklist"
)

const tokenTtl = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	blocklist blocklist.Usecase
}

func New(jwtSecret string, blocklist blocklist.Usecase) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		blocklist: blocklist,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	if !address.IsValid() {
		return "", domain.ErrInvalidAddress
	}

	if blocked, err := im.blocklist.IsBlocked(ctx, address); err != nil {
		ctx.WithField("err", err).Error("blocklist.IsBlocked failed")
		return "", err
	} else if blocked {
		ctx.WithField("address", address).Warn("blocked wallet asked for a token")
		return "", domain.ErrWalletBlocked
	}

	claims := domain.JwtCustomClaims{
		Address: string(address),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return claims.Address, nil
		}
	}

	return "", err
}
