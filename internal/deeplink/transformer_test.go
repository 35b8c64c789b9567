package deeplink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferProduct(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"片段路由", "https://app.snowflake.com/kl30547/us-east-2/#/cortex/playground", "Cortex"},
		{"一级路径", "https://app.snowflake.com/marketplace", "Marketplace"},
		{"连字符转空格", "https://app.snowflake.com/org/acct/#/data-products", "Data Products"},
		{"路径带查询", "https://app.snowflake.com/open-flow?x=1", "Open Flow"},
		{"其他域名", "https://example.com/page", "Unknown"},
		{"空输入", "", ""},
		{"空白输入", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferProduct(tc.url))
		})
	}
}

func TestGenerateDeeplink(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"片段路由", "https://app.snowflake.com/kl30547/us-east-2/#/agents", "https://app.snowflake.com/_deeplink/#/agents"},
		{"多级片段", "https://app.snowflake.com/kl30547/us-east-2/#/cortex/playground", "https://app.snowflake.com/_deeplink/#/cortex/playground"},
		{"console 路径", "https://app.snowflake.com/org/acct/console/worksheets", "https://app.snowflake.com/_deeplink/console/worksheets"},
		{"域名后直接 console", "https://app.snowflake.com/console/login", "https://app.snowflake.com/_deeplink/console/login"},
		{"一级路径", "https://app.snowflake.com/marketplace", "https://app.snowflake.com/_deeplink/"},
		{"去掉组织和区域", "https://app.snowflake.com/org/acct/data/databases", "https://app.snowflake.com/_deeplink/data/databases"},
		{"合并重复斜杠", "https://app.snowflake.com/org/acct//data///databases", "https://app.snowflake.com/_deeplink/data/databases"},
		{"没有路径", "https://app.snowflake.com", "https://app.snowflake.com/_deeplink/"},
		{"其他域名带片段", "https://example.com/a/#/x", "https://example.com/a/#/x"},
		{"占位文本", PlaceholderURL, PlaceholderDeeplink},
		{"空输入", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateDeeplink(tc.url))
		})
	}
}

func TestTransformer_CustomHost(t *testing.T) {
	tr := New("console.example.org")

	assert.Equal(t, "console.example.org", tr.Host())
	assert.Equal(t, "Billing", tr.InferProduct("https://console.example.org/billing"))
	assert.Equal(t, "https://console.example.org/_deeplink/#/home", tr.GenerateDeeplink("https://console.example.org/o/r/#/home"))
	assert.Equal(t, DefaultHost, New("  ").Host())
}

func TestGenerateTrackingURL(t *testing.T) {
	t.Run("占位标题", func(t *testing.T) {
		assert.Empty(t, GenerateTrackingURL("Title", "https://x/_deeplink/", "LinkedIn"))
	})

	t.Run("未知渠道", func(t *testing.T) {
		assert.Empty(t, GenerateTrackingURL("My Post", "https://x/_deeplink/", "Twitter"))
	})

	t.Run("LinkedIn", func(t *testing.T) {
		got := GenerateTrackingURL("My Post", "https://x/_deeplink/", "LinkedIn")
		assert.Contains(t, got, "utm_source=linkedin")
		assert.True(t, strings.HasSuffix(got, "-app-my-post"), got)
		assert.Equal(t, "https://x/_deeplink//?utm_source=linkedin&utm_medium=social&utm_campaign=-us-en-all&utm_content=-app-my-post", got)
	})

	t.Run("Quickstart 使用问号分隔", func(t *testing.T) {
		got := GenerateTrackingURL("My Awesome Post", "https://app.snowflake.com/_deeplink/#/agents", "Quickstart")
		assert.Equal(t, "https://app.snowflake.com/_deeplink/#/agents?utm_source=quickstart&utm_medium=quickstart&utm_campaign=-us-en-all&utm_content=app-my-awesome-post", got)
	})

	t.Run("所有渠道", func(t *testing.T) {
		for _, source := range []string{"Quickstart", "LinkedIn", "Medium", "GitHub", "Docs"} {
			params, ok := UTMParams(source)
			assert.True(t, ok, source)
			assert.Contains(t, GenerateTrackingURL("a b", "base", source), params)
		}
	})
}

func TestRandomExample(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Contains(t, Examples, RandomExample())
	}
}
