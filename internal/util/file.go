package util

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// DetectContentType 优先按扩展名判断，无法判断时嗅探内容
func DetectContentType(filename string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	n := len(data)
	if n > 512 {
		n = 512
	}
	return http.DetectContentType(data[:n])
}

// SafeFilename 去掉路径部分，防止写出存储目录
func SafeFilename(name string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		return ""
	}
	return name
}
