// Package web 内嵌 HTML 页面模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	// 表单字段从 1 开始编号
	"inc": func(i int) int { return i + 1 },
}

// Templates 模板名为文件名，例如 "form.html"
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
