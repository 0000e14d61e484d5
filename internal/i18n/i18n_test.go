package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTranslateFallback(t *testing.T) {
	if got := T("en-US", "error.not_found"); got == "error.not_found" {
		t.Fatalf("known key should translate, got %q", got)
	}
	// 不支持的语言回退默认语言
	if got := T("fr-FR", "error.not_found"); got != T(DefaultLocale, "error.not_found") {
		t.Fatalf("unsupported locale must fall back, got %q", got)
	}
	// 未知 key 原样返回
	if got := T("zh-CN", "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("unknown key must echo back, got %q", got)
	}
}

func TestSprintfFillsArgs(t *testing.T) {
	msg := Sprintf("en-US", "error.rate_limited", 30)
	if !strings.Contains(msg, "30") {
		t.Fatalf("wait seconds should be rendered, got %q", msg)
	}
	// 无参数时不走格式化
	if got := Sprintf("en-US", "error.not_found"); got != T("en-US", "error.not_found") {
		t.Fatalf("no-arg sprintf must equal plain translation, got %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		query  string
		header string
		want   string
	}{
		{name: "default", want: "zh-CN"},
		{name: "query wins", query: "en-US", header: "zh-CN", want: "en-US"},
		{name: "header variant", header: "en-GB,en;q=0.9", want: "en-US"},
		{name: "chinese variant", header: "zh-TW", want: "zh-CN"},
		{name: "unsupported header", header: "fr-FR", want: "zh-CN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			target := "/"
			if tc.query != "" {
				target = "/?locale=" + tc.query
			}
			c.Request = httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				c.Request.Header.Set("Accept-Language", tc.header)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}
