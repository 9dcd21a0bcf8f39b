// Package sorter 按标题对搜索结果排序
package sorter

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/user/moviesearch/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale 未配置时使用的排序语言
const DefaultLocale = "sv"

// Sorter 基于本地化排序规则的标题排序器
// collate.Collator 不能并发使用，所以用锁保护
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
	locale   language.Tag
}

// NewSorter 创建排序器，locale 为 BCP 47 语言标签（如 sv、en-US）
func NewSorter(locale string) (*Sorter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("无效的排序语言 %q: %w", locale, err)
	}
	return &Sorter{
		collator: collate.New(tag),
		locale:   tag,
	}, nil
}

// Locale 当前排序语言
func (s *Sorter) Locale() string {
	return s.locale.String()
}

// Compare 比较两个标题，返回 -1/0/1
// 排序规则认为相等但字节不同的标题（如带零宽字符）按字节序区分，
// 只有完全相同的标题才算相等
func (s *Sorter) Compare(a, b string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compare(a, b)
}

func (s *Sorter) compare(a, b string) int {
	if c := s.collator.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort 返回按标题排序后的新切片，不修改入参
// 标题相同的记录保持原有相对顺序（升降序都一样）
func (s *Sorter) Sort(movies []model.MovieRecord, ascending bool) []model.MovieRecord {
	out := model.CloneMovies(movies)
	if len(out) < 2 {
		return out
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(out, func(a, b model.MovieRecord) int {
		c := s.compare(a.Title, b.Title)
		if !ascending {
			return -c
		}
		return c
	})
	return out
}

// SortBy 按选择框方向排序
func (s *Sorter) SortBy(movies []model.MovieRecord, order model.SortOrder) []model.MovieRecord {
	return s.Sort(movies, order.Ascending())
}

var (
	defaultOnce   sync.Once
	defaultSorter *Sorter
)

// Default 使用 DefaultLocale 的共享排序器
func Default() *Sorter {
	defaultOnce.Do(func() {
		tag := language.MustParse(DefaultLocale)
		defaultSorter = &Sorter{collator: collate.New(tag), locale: tag}
	})
	return defaultSorter
}

// MovieSort 使用默认排序器排序
func MovieSort(movies []model.MovieRecord, ascending bool) []model.MovieRecord {
	return Default().Sort(movies, ascending)
}
