package util

import "strings"

const (
	KakaoSeeMorePadding = 500
	KakaoZeroWidthSpace = "\u200b"
)

// SeeMore folds body behind KakaoTalk's "전체보기" by padding the first line with
// zero-width spaces. header stays visible; a repeated header at the top of body is dropped.
func SeeMore(header, body string) string {
	if strings.TrimSpace(body) == "" {
		return body
	}
	header = strings.TrimSpace(header)
	body = StripLeadingHeader(body, header)

	var b strings.Builder
	b.Grow(len(header) + len(body) + KakaoSeeMorePadding*len(KakaoZeroWidthSpace) + 1)
	b.WriteString(header)
	b.WriteString(strings.Repeat(KakaoZeroWidthSpace, KakaoSeeMorePadding))
	if !strings.HasPrefix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String()
}

// StripLeadingHeader removes header (and the blank lines after it) from the start of text.
func StripLeadingHeader(text, header string) string {
	if strings.TrimSpace(header) == "" || !strings.HasPrefix(text, header) {
		return text
	}
	rest := strings.TrimPrefix(text, header)
	return strings.TrimLeft(rest, "\r\n")
}
