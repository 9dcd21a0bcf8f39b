package repository

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/moviesearch/internal/model"
)

// resultEntry 一个会话当前展示的结果
type resultEntry struct {
	Token  uint64
	Movies []model.MovieRecord
}

// ResultRepository 按会话保存当前结果序列，页面只是它的投影
// 搜索请求先 Begin 领取序号，响应回来后 Commit，较旧序号的响应会被丢弃
type ResultRepository struct {
	mu    sync.Mutex
	seq   atomic.Uint64
	store *cache.Cache
}

// NewResultRepository ttl 为无写入后的保留时间
func NewResultRepository(ttl time.Duration) *ResultRepository {
	return &ResultRepository{
		store: cache.New(ttl, 2*ttl),
	}
}

// Begin 为一次搜索领取单调递增的序号
func (r *ResultRepository) Begin(sessionID string) uint64 {
	return r.seq.Add(1)
}

// Commit 写入搜索结果，只有比已应用序号更新的结果才生效
func (r *ResultRepository) Commit(sessionID string, token uint64, movies []model.MovieRecord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, found := r.store.Get(sessionID); found {
		if v.(resultEntry).Token >= token {
			return false
		}
	}
	r.store.Set(sessionID, resultEntry{Token: token, Movies: model.CloneMovies(movies)}, cache.DefaultExpiration)
	return true
}

// Replace 用排序后的序列覆盖当前结果，不改变序号
// token 必须与读取时的序号一致，期间有新的搜索生效则拒绝写入
func (r *ResultRepository) Replace(sessionID string, token uint64, movies []model.MovieRecord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current uint64
	if v, found := r.store.Get(sessionID); found {
		current = v.(resultEntry).Token
	}
	if current != token {
		return false
	}
	r.store.Set(sessionID, resultEntry{Token: token, Movies: model.CloneMovies(movies)}, cache.DefaultExpiration)
	return true
}

// Current 当前结果的副本
func (r *ResultRepository) Current(sessionID string) ([]model.MovieRecord, bool) {
	movies, _, found := r.Snapshot(sessionID)
	return movies, found
}

// Snapshot 当前结果的副本及其序号，配合 Replace 使用
func (r *ResultRepository) Snapshot(sessionID string) ([]model.MovieRecord, uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, found := r.store.Get(sessionID)
	if !found {
		return nil, 0, false
	}
	entry := v.(resultEntry)
	return model.CloneMovies(entry.Movies), entry.Token, true
}

// Clear 清除会话结果
func (r *ResultRepository) Clear(sessionID string) {
	r.store.Delete(sessionID)
}

// Count 持有结果的会话数
func (r *ResultRepository) Count() int {
	return r.store.ItemCount()
}
