package model

import "strings"

// MovieRecord 一条搜索结果（OMDb 字段名）
// 由响应解析或卡片回读构造后不再修改，排序只调整引用顺序
type MovieRecord struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"` // 可能是 "N/A" 占位
}

// SearchResponse OMDb 搜索接口响应
type SearchResponse struct {
	Search       []MovieRecord `json:"Search"`
	TotalResults string        `json:"totalResults"`
	Response     string        `json:"Response"`
	Error        string        `json:"Error"`
}

// SortOrder 排序方向
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder 解析选择框的值，除 desc 外一律按升序
func ParseSortOrder(v string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(v), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// Ascending 是否升序
func (o SortOrder) Ascending() bool {
	return o != SortDesc
}

// CloneMovies 复制切片，nil 返回空切片
func CloneMovies(movies []MovieRecord) []MovieRecord {
	out := make([]MovieRecord, len(movies))
	copy(out, movies)
	return out
}
