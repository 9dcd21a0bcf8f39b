package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/moviesearch/internal/model"
)

func movies(ts ...string) []model.MovieRecord {
	out := make([]model.MovieRecord, 0, len(ts))
	for _, t := range ts {
		out = append(out, model.MovieRecord{Title: t})
	}
	return out
}

func TestResultRepository_CommitAndCurrent(t *testing.T) {
	r := NewResultRepository(time.Minute)

	_, ok := r.Current("s1")
	assert.False(t, ok)

	tok := r.Begin("s1")
	require.True(t, r.Commit("s1", tok, movies("Avatar")))

	got, ok := r.Current("s1")
	require.True(t, ok)
	assert.Equal(t, movies("Avatar"), got)

	// 副本
	got[0].Title = "changed"
	again, _ := r.Current("s1")
	assert.Equal(t, "Avatar", again[0].Title)
}

func TestResultRepository_StaleCommitIgnored(t *testing.T) {
	r := NewResultRepository(time.Minute)

	older := r.Begin("s1")
	newer := r.Begin("s1")
	assert.Greater(t, newer, older)

	require.True(t, r.Commit("s1", newer, movies("Newer")))
	assert.False(t, r.Commit("s1", older, movies("Older")))

	got, _ := r.Current("s1")
	assert.Equal(t, movies("Newer"), got)
}

func TestResultRepository_InOrderCommits(t *testing.T) {
	r := NewResultRepository(time.Minute)

	first := r.Begin("s1")
	second := r.Begin("s1")
	require.True(t, r.Commit("s1", first, movies("First")))
	require.True(t, r.Commit("s1", second, movies("Second")))

	got, _ := r.Current("s1")
	assert.Equal(t, movies("Second"), got)
}

func TestResultRepository_SessionsIsolated(t *testing.T) {
	r := NewResultRepository(time.Minute)

	a := r.Begin("a")
	b := r.Begin("b")
	require.True(t, r.Commit("b", b, movies("B")))
	require.True(t, r.Commit("a", a, movies("A")))

	gotA, _ := r.Current("a")
	gotB, _ := r.Current("b")
	assert.Equal(t, movies("A"), gotA)
	assert.Equal(t, movies("B"), gotB)
	assert.Equal(t, 2, r.Count())

	r.Clear("a")
	_, ok := r.Current("a")
	assert.False(t, ok)
}

func TestResultRepository_ReplaceKeepsToken(t *testing.T) {
	r := NewResultRepository(time.Minute)

	older := r.Begin("s1")
	newer := r.Begin("s1")
	require.True(t, r.Commit("s1", newer, movies("b", "a")))

	_, token, ok := r.Snapshot("s1")
	require.True(t, ok)
	require.Equal(t, newer, token)

	require.True(t, r.Replace("s1", token, movies("a", "b")))
	got, _ := r.Current("s1")
	assert.Equal(t, movies("a", "b"), got)

	assert.False(t, r.Commit("s1", older, movies("stale")))
}

func TestResultRepository_ReplaceRefusedAfterNewerCommit(t *testing.T) {
	r := NewResultRepository(time.Minute)
	require.True(t, r.Commit("s1", r.Begin("s1"), movies("Old B", "Old A")))

	old, token, ok := r.Snapshot("s1")
	require.True(t, ok)

	// 排序期间另一个搜索先生效
	require.True(t, r.Commit("s1", r.Begin("s1"), movies("New Search")))

	assert.False(t, r.Replace("s1", token, movies(old[1].Title, old[0].Title)))
	got, _ := r.Current("s1")
	assert.Equal(t, movies("New Search"), got)
}

func TestResultRepository_ReplaceEmptySession(t *testing.T) {
	r := NewResultRepository(time.Minute)

	require.True(t, r.Replace("s1", 0, movies("a")))
	got, ok := r.Current("s1")
	require.True(t, ok)
	assert.Equal(t, movies("a"), got)

	// 之后的搜索照常生效
	assert.True(t, r.Commit("s1", r.Begin("s1"), movies("b")))
}

func TestResultRepository_Expiry(t *testing.T) {
	r := NewResultRepository(20 * time.Millisecond)
	require.True(t, r.Commit("s1", r.Begin("s1"), movies("Avatar")))

	time.Sleep(40 * time.Millisecond)

	_, ok := r.Current("s1")
	assert.False(t, ok)
}

func TestResultRepository_ConcurrentCommitsKeepNewest(t *testing.T) {
	r := NewResultRepository(time.Minute)

	tokens := make([]uint64, 50)
	for i := range tokens {
		tokens[i] = r.Begin("s1")
	}

	var wg sync.WaitGroup
	for i := len(tokens) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Commit("s1", tokens[i], movies(string(rune('A'+i%26))))
		}(i)
	}
	wg.Wait()

	got, _ := r.Current("s1")
	assert.Equal(t, movies(string(rune('A'+49%26))), got)
}
