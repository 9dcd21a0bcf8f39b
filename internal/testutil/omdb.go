// Package testutil 测试用的 OMDb 假服务
package testutil

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Fixture 读取 testdata 下的 JSON 样例
func Fixture(name string) []byte {
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		panic(err)
	}
	return data
}

// Reply 一次假响应
type Reply struct {
	Status int
	Body   []byte
}

// OMDbServer 假的 OMDb 服务，按 s 参数返回预设响应
type OMDbServer struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	fallback Reply
	queries  []url.Values
	hits     atomic.Int64
	blocks   map[string]chan struct{}
}

// NewOMDbServer 默认：包含 "avatar" 的查询返回 omdbResponse.json，其余返回 noResponse.json
func NewOMDbServer() *OMDbServer {
	s := &OMDbServer{
		replies:  map[string]Reply{},
		blocks:   map[string]chan struct{}{},
		fallback: Reply{Status: http.StatusOK, Body: Fixture("noResponse.json")},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Reply 为指定查询设置响应
func (s *OMDbServer) Reply(query string, status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[query] = Reply{Status: status, Body: body}
}

// Fallback 设置未匹配查询的响应
func (s *OMDbServer) Fallback(status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = Reply{Status: status, Body: body}
}

// Block 指定查询的请求在 release 被关闭前挂起
func (s *OMDbServer) Block(query string, release chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[query] = release
}

// Hits 收到的请求数
func (s *OMDbServer) Hits() int {
	return int(s.hits.Load())
}

// Queries 收到的查询参数
func (s *OMDbServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.queries))
	copy(out, s.queries)
	return out
}

func (s *OMDbServer) serve(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	q := r.URL.Query()

	s.mu.Lock()
	s.queries = append(s.queries, q)
	reply, ok := s.replies[q.Get("s")]
	if !ok {
		reply = s.fallback
		if strings.Contains(strings.ToLower(q.Get("s")), "avatar") {
			reply = Reply{Status: http.StatusOK, Body: Fixture("omdbResponse.json")}
		}
	}
	block := s.blocks[q.Get("s")]
	s.mu.Unlock()

	if block != nil {
		<-block
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = w.Write(reply.Body)
}
