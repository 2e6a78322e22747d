package frame

import (
	"fmt"
	"html"
	"strings"
)

// Button frame 底部按钮，Target 为点击后回传的完整地址
type Button struct {
	Label  string
	Target string
}

// Response 一屏 frame 的完整描述，渲染为带 fc:frame 元标签的 HTML 文档
type Response struct {
	Title            string
	ImageURL         string
	PostURL          string
	InputPlaceholder string // 为空则不渲染输入框
	State            string // 已签名的会话状态令牌
	Buttons          []Button
}

// HTML 渲染 vNext 协议的 frame 文档
func (s *Response) HTML() string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(s.Title)))
	meta(&b, "og:title", s.Title)
	meta(&b, "og:image", s.ImageURL)
	meta(&b, "fc:frame", "vNext")
	meta(&b, "fc:frame:image", s.ImageURL)
	meta(&b, "fc:frame:image:aspect_ratio", "1.91:1")

	if s.PostURL != "" {
		meta(&b, "fc:frame:post_url", s.PostURL)
	}
	if s.InputPlaceholder != "" {
		meta(&b, "fc:frame:input:text", s.InputPlaceholder)
	}
	if s.State != "" {
		meta(&b, "fc:frame:state", s.State)
	}

	// 协议最多允许 4 个按钮
	for i, btn := range s.Buttons {
		if i >= 4 {
			break
		}
		idx := i + 1
		meta(&b, fmt.Sprintf("fc:frame:button:%d", idx), btn.Label)
		meta(&b, fmt.Sprintf("fc:frame:button:%d:action", idx), "post")
		meta(&b, fmt.Sprintf("fc:frame:button:%d:target", idx), btn.Target)
	}

	b.WriteString("</head>\n<body></body>\n</html>\n")
	return b.String()
}

func meta(b *strings.Builder, property, content string) {
	b.WriteString(fmt.Sprintf("<meta property=\"%s\" content=\"%s\" />\n",
		html.EscapeString(property), html.EscapeString(content)))
}
