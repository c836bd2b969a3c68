// Package listing 维护学员目录与首页精选作品的列表状态
// 派生视图（搜索、分页、头像装饰）均为纯函数，可独立测试
package listing

import (
	"strings"
	"unicode/utf8"

	"iyf-showcase/backend/internal/dto"
)

// PageSize 学员目录每页条数
const PageSize = 10

// Palette 头像底色，按学员 ID 取模选取
var Palette = []string{
	"bg-purple-100 text-purple-600",
	"bg-indigo-100 text-indigo-600",
	"bg-pink-100 text-pink-600",
	"bg-blue-100 text-blue-600",
	"bg-teal-100 text-teal-600",
}

// Filter 按姓名做大小写不敏感的子串匹配；空搜索词返回原列表
func Filter(students []dto.StudentResponse, term string) []dto.StudentResponse {
	if term == "" {
		return students
	}
	needle := strings.ToLower(term)
	out := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

// TotalPages ceil(n / size)
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate 返回第 page 页（从 1 开始）；越界返回空切片
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Initials 取每个空白分隔词的首字符并按顺序拼接
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// ColorFor 学员头像底色
func ColorFor(id int) string {
	i := id % len(Palette)
	if i < 0 {
		i += len(Palette)
	}
	return Palette[i]
}
