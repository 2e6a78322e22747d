package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 普通浏览器访问根路径时展示的静态说明页
const landingHTML = `<!DOCTYPE html>
<html>
<head>
<title>Farcaster Analytics Hub</title>
<style>
body { background: #1E1E1E; color: #fff; font-family: Arial, sans-serif; text-align: center; padding-top: 120px; }
h1 { font-size: 40px; }
p { font-size: 20px; color: #ccc; }
code { background: #2A2A2A; padding: 2px 8px; border-radius: 4px; }
</style>
</head>
<body>
<h1>Farcaster Analytics Hub</h1>
<p>This is a Farcaster frame server. Cast the frame URL <code>/frames</code> inside a Farcaster client to use it.</p>
<p>User info, 30-day cast analytics and lifetime earnings for any FID or username.</p>
</body>
</html>
`

// Landing 静态说明页
func (s *FrameHandler) Landing(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingHTML))
}
