// Package render 把结果序列渲染成卡片，并能从卡片回读结果
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/multitemplate"
	"github.com/user/moviesearch/internal/model"
)

// NoResultMessage 无结果时的提示
const NoResultMessage = "Inga sökresultat att visa"

// 模板名
const (
	PageTemplate      = "page.html"
	ContainerTemplate = "movie_container.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"noResultMessage": func() string { return NoResultMessage },
}

// PageData 整页渲染数据
type PageData struct {
	Title     string
	SiteName  string
	Query     string
	SortOrder model.SortOrder
	Searched  bool // 已有结果集（可能为空），首屏为 false 时不显示无结果提示
	Movies    []model.MovieRecord
}

// Renderer 渲染器，不会改变传入序列的顺序
type Renderer struct {
	page      *template.Template
	container *template.Template
}

// New 解析内嵌模板
func New() (*Renderer, error) {
	container, err := template.New(ContainerTemplate).Funcs(funcMap).
		ParseFS(templateFS, "templates/"+ContainerTemplate)
	if err != nil {
		return nil, fmt.Errorf("解析结果模板失败: %w", err)
	}
	page, err := template.New(PageTemplate).Funcs(funcMap).
		ParseFS(templateFS, "templates/"+PageTemplate, "templates/"+ContainerTemplate)
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	return &Renderer{page: page, container: container}, nil
}

// Container 渲染 #movie-container 的内容：每条记录一张卡片，空序列渲染无结果提示
func (r *Renderer) Container(w io.Writer, movies []model.MovieRecord) error {
	return r.container.ExecuteTemplate(w, ContainerTemplate, movies)
}

// Page 渲染整页
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.page.ExecuteTemplate(w, PageTemplate, data)
}

// HTMLRender 供 gin 使用的模板集合
func (r *Renderer) HTMLRender() multitemplate.Render {
	mr := multitemplate.New()
	mr.Add(PageTemplate, r.page)
	mr.Add(ContainerTemplate, r.container)
	return mr
}

// ParseCards 从卡片标记回读结果，字段与 Container 写入的一一对应
func ParseCards(rd io.Reader) ([]model.MovieRecord, error) {
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return nil, fmt.Errorf("解析卡片失败: %w", err)
	}

	movies := []model.MovieRecord{}
	doc.Find(".movie").Each(func(i int, s *goquery.Selection) {
		poster, _ := s.Find("img").First().Attr("src")
		movies = append(movies, model.MovieRecord{
			Title:  strings.TrimSpace(s.Find("h3").First().Text()),
			Year:   s.AttrOr("data-year", ""),
			ImdbID: s.AttrOr("data-imdbid", ""),
			Type:   s.AttrOr("data-type", ""),
			Poster: poster,
		})
	})
	return movies, nil
}

// CountCards 卡片数量
func CountCards(rd io.Reader) (int, error) {
	doc, err := goquery.NewDocumentFromReader(rd)
	if err != nil {
		return 0, fmt.Errorf("解析卡片失败: %w", err)
	}
	return doc.Find(".movie").Length(), nil
}
