package chain

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/neonflick/goapi/base/backoff"
	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/base/log"
	"github.com/neonflick/goapi/base/metrics"
	"github.com/neonflick/goapi/domain"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultCommitment = "finalized"
	defaultRetries    = 3
)

var (
	ErrEmptyBlockhash = errors.New("empty blockhash")

	met = metrics.New("chain")
)

type ClientCfg struct {
	RpcUrl     string
	Commitment string
	Timeout    time.Duration
	// Retries is the number of attempts for transient failures
	Retries int
}

type latestBlockhash struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value struct {
		Blockhash            string `json:"blockhash"`
		LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
	} `json:"value"`
}

type clientImpl struct {
	rpc        *rpc.Client
	commitment string
	timeout    time.Duration
	retries    int
}

func NewClient(c ctx.Ctx, cfg *ClientCfg) (domain.ChainClient, error) {
	client, err := rpc.DialContext(c, cfg.RpcUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"url": cfg.RpcUrl,
		}).Error("rpc.DialContext failed")
		return nil, err
	}

	im := &clientImpl{
		rpc:        client,
		commitment: cfg.Commitment,
		timeout:    cfg.Timeout,
		retries:    cfg.Retries,
	}
	if im.commitment == "" {
		im.commitment = defaultCommitment
	}
	if im.timeout <= 0 {
		im.timeout = defaultTimeout
	}
	if im.retries <= 0 {
		im.retries = defaultRetries
	}
	return im, nil
}

func (im *clientImpl) LatestBlockhash(c ctx.Ctx) (string, error) {
	defer met.BumpTime("latest_blockhash.time").End()

	var res latestBlockhash
	b := backoff.NewExponential(200*time.Millisecond, 2*time.Second)
	err := backoff.Retry(c, b, im.retries, func() error {
		callCtx, cancel := ctx.WithTimeout(c, im.timeout)
		defer cancel()

		err := im.rpc.CallContext(callCtx, &res, "getLatestBlockhash", map[string]string{
			"commitment": im.commitment,
		})
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			// the node answered, asking again will not change its mind
			return backoff.Permanent(err)
		} else if err != nil {
			c.WithField("err", err).Warn("getLatestBlockhash attempt failed")
			return err
		}
		return nil
	})
	if err != nil {
		met.BumpSum("latest_blockhash.err", 1)
		c.WithField("err", err).Error("rpc.CallContext failed")
		return "", err
	}

	if res.Value.Blockhash == "" {
		c.WithField("slot", res.Context.Slot).Error("empty blockhash")
		return "", ErrEmptyBlockhash
	}
	return res.Value.Blockhash, nil
}
