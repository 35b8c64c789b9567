package deeplink

import "strings"

// utmParams 每个推广渠道固定的 UTM 参数
var utmParams = map[string]string{
	"Quickstart": "utm_source=quickstart&utm_medium=quickstart",
	"LinkedIn":   "utm_source=linkedin&utm_medium=social",
	"Medium":     "utm_source=medium_blog&utm_medium=blog",
	"GitHub":     "utm_source=github&utm_medium=github",
	"Docs":       "utm_source=docs&utm_medium=docs",
}

// UTMParams 返回渠道对应的 UTM 参数，未知渠道返回 false
func UTMParams(source string) (string, bool) {
	params, ok := utmParams[source]
	return params, ok
}

// GenerateTrackingURL 在深链接后拼接 UTM 参数、活动标记和内容标识
//
// 标题为占位文本或渠道未知时返回空字符串。
func GenerateTrackingURL(title, baseURL, source string) string {
	if title == PlaceholderTitle {
		return ""
	}
	params, ok := utmParams[source]
	if !ok {
		return ""
	}

	separator, contentPrefix := "/?", "-app-"
	if source == "Quickstart" {
		separator, contentPrefix = "?", "app-"
	}
	slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")

	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString(separator)
	b.WriteString(params)
	b.WriteString("&utm_campaign=")
	b.WriteString(Campaign)
	b.WriteString("&utm_content=")
	b.WriteString(contentPrefix)
	b.WriteString(slug)
	return b.String()
}
