package deeplink

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

const (
	// DefaultHost 默认的控制台域名
	DefaultHost = "app.snowflake.com"

	// PlaceholderURL 表单中输入框的占位文本
	PlaceholderURL = "Input Here"
	// PlaceholderDeeplink 输入为占位文本时返回的提示
	PlaceholderDeeplink = "Your deeplink to use will appear here"
	// PlaceholderTitle 标题占位文本，不生成追踪链接
	PlaceholderTitle = "Title"

	// UnknownProduct 无法推断产品名时的返回值
	UnknownProduct = "Unknown"

	// Segment 插入到域名之后的深链接路径段
	Segment = "_deeplink"

	// Campaign 固定的活动标记
	Campaign = "-us-en-all"
)

var (
	fragmentPattern = regexp.MustCompile(`#/([^/]+)`)
	repeatedSlashes = regexp.MustCompile(`//+`)
)

// Transformer 负责把控制台链接改写为深链接和追踪链接
type Transformer struct {
	host        string
	pathPattern *regexp.Regexp
}

var defaultTransformer = New(DefaultHost)

// New 创建针对指定控制台域名的转换器，host 为空时使用默认域名
func New(host string) *Transformer {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}
	return &Transformer{
		host:        host,
		pathPattern: regexp.MustCompile(regexp.QuoteMeta(host) + `/([^/?#]+)`),
	}
}

// Host 返回转换器使用的控制台域名
func (t *Transformer) Host() string {
	return t.host
}

// Root 返回控制台根地址，例如 https://app.snowflake.com/
func (t *Transformer) Root() string {
	return "https://" + t.host + "/"
}

// InferProduct 从链接中推断产品名
func (t *Transformer) InferProduct(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}
	if m := fragmentPattern.FindStringSubmatch(rawURL); m != nil {
		return titleCase(strings.ReplaceAll(m[1], "-", " "))
	}
	if m := t.pathPattern.FindStringSubmatch(rawURL); m != nil {
		return titleCase(strings.ReplaceAll(m[1], "-", " "))
	}
	return UnknownProduct
}

// GenerateDeeplink 把控制台链接改写为深链接
func (t *Transformer) GenerateDeeplink(rawURL string) string {
	if rawURL == PlaceholderURL {
		return PlaceholderDeeplink
	}
	if strings.TrimSpace(rawURL) == "" {
		return ""
	}

	root := t.Root()
	if strings.Contains(rawURL, "#/") || strings.Contains(rawURL, "/console/") {
		if !strings.HasPrefix(rawURL, root) {
			return rawURL
		}
		// 从域名末尾的斜杠开始查找，保证紧跟域名的 /console/ 也能命中
		idx := markerIndex(rawURL[len(root)-1:])
		if idx < 0 {
			return rawURL
		}
		tail := rawURL[len(root)-1+idx:]
		if strings.HasPrefix(tail, "/") {
			return root + Segment + tail
		}
		return root + Segment + "/" + tail
	}

	path := ""
	if strings.HasPrefix(rawURL, root) {
		path = rawURL[len(root):]
	}
	// 去掉组织和区域两段
	path = dropSegments(path, 2)
	path = repeatedSlashes.ReplaceAllString(path, "/")
	path = strings.TrimPrefix(path, "/")
	return root + Segment + "/" + path
}

// InferProduct 使用默认域名推断产品名
func InferProduct(rawURL string) string {
	return defaultTransformer.InferProduct(rawURL)
}

// GenerateDeeplink 使用默认域名生成深链接
func GenerateDeeplink(rawURL string) string {
	return defaultTransformer.GenerateDeeplink(rawURL)
}

// markerIndex 返回 "#/" 与 "/console/" 中最早出现的位置，均未出现时返回 -1
func markerIndex(s string) int {
	idx := -1
	for _, marker := range []string{"#/", "/console/"} {
		if i := strings.Index(s, marker); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	return idx
}

func dropSegments(path string, n int) string {
	parts := strings.SplitN(path, "/", n+1)
	if len(parts) <= n {
		return ""
	}
	return parts[n]
}

// titleCase 每个字母段首字母大写、其余小写
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
			continue
		}
		b.WriteRune(r)
		inWord = false
	}
	return b.String()
}

// Examples 表单 "Use Example" 按钮使用的示例链接
var Examples = []string{
	"https://app.snowflake.com/kl30547/us-east-2/#/cortex/playground",
	"https://app.snowflake.com/kl30547/us-east-2/#/agents",
	"https://app.snowflake.com/marketplace",
	"https://app.snowflake.com/migrations",
	"https://app.snowflake.com/openflow",
}

// RandomExample 随机返回一个示例链接
func RandomExample() string {
	return Examples[rand.Intn(len(Examples))]
}
