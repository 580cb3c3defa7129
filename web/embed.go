package web

import "embed"

// StaticFS 前端静态页面
//
//go:embed index.html
var StaticFS embed.FS
