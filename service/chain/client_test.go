package chain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/neonflick/goapi/base/ctx"
)

type rpcRequest struct {
	Id     json.RawMessage     `json:"id"`
	Method string              `json:"method"`
	Params []map[string]string `json:"params"`
}

type clientSuite struct {
	suite.Suite
	calls   int32
	handler func(w http.ResponseWriter, req rpcRequest)
	server  *httptest.Server
	client  *clientImpl
}

func (s *clientSuite) SetupTest() {
	atomic.StoreInt32(&s.calls, 0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.calls, 1)
		var req rpcRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.handler(w, req)
	}))

	c, err := NewClient(ctx.Background(), &ClientCfg{
		RpcUrl:     s.server.URL,
		Commitment: "confirmed",
		Timeout:    time.Second,
		Retries:    3,
	})
	s.Require().NoError(err)
	s.client = c.(*clientImpl)
}

func (s *clientSuite) TearDownTest() {
	s.server.Close()
}

func writeResult(w http.ResponseWriter, id json.RawMessage, result string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(id) + `,"result":` + result + `}`))
}

func (s *clientSuite) TestLatestBlockhash() {
	s.handler = func(w http.ResponseWriter, req rpcRequest) {
		s.Equal("getLatestBlockhash", req.Method)
		s.Equal([]map[string]string{{"commitment": "confirmed"}}, req.Params)
		writeResult(w, req.Id, `{"context":{"slot":2792},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":3090}}`)
	}

	hash, err := s.client.LatestBlockhash(ctx.Background())
	s.NoError(err)
	s.Equal("EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N", hash)
	s.Equal(int32(1), atomic.LoadInt32(&s.calls))
}

func (s *clientSuite) TestRetryTransient() {
	s.handler = func(w http.ResponseWriter, req rpcRequest) {
		if atomic.LoadInt32(&s.calls) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeResult(w, req.Id, `{"context":{"slot":1},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":2}}`)
	}

	hash, err := s.client.LatestBlockhash(ctx.Background())
	s.NoError(err)
	s.Equal("EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N", hash)
	s.Equal(int32(2), atomic.LoadInt32(&s.calls))
}

func (s *clientSuite) TestGiveUpAfterRetries() {
	s.handler = func(w http.ResponseWriter, req rpcRequest) {
		w.WriteHeader(http.StatusBadGateway)
	}

	_, err := s.client.LatestBlockhash(ctx.Background())
	s.Error(err)
	s.Equal(int32(3), atomic.LoadInt32(&s.calls))
}

func (s *clientSuite) TestRpcErrorNotRetried() {
	s.handler = func(w http.ResponseWriter, req rpcRequest) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.Id) + `,"error":{"code":-32602,"message":"Invalid params"}}`))
	}

	_, err := s.client.LatestBlockhash(ctx.Background())
	s.Error(err)
	s.Equal(int32(1), atomic.LoadInt32(&s.calls))
}

func (s *clientSuite) TestEmptyBlockhash() {
	s.handler = func(w http.ResponseWriter, req rpcRequest) {
		writeResult(w, req.Id, `{"context":{"slot":1},"value":{"blockhash":""}}`)
	}

	_, err := s.client.LatestBlockhash(ctx.Background())
	s.Equal(ErrEmptyBlockhash, err)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientSuite))
}
