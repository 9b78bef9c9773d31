package events

import "strings"

// SimplifyTypeName reduces a printed type spelling to the name used for
// owners and Type usages: the first token, and for protocol-qualified
// spellings the names between the angle brackets.
//
//	"NSString *"                 -> "NSString"
//	"id<NSCopying>"              -> "NSCopying"
//	"id<A, B> _Nonnull"          -> "A,B"
func SimplifyTypeName(spelling string) string {
	s := strings.TrimSpace(spelling)
	start := strings.IndexByte(s, '<')
	space := strings.IndexAny(s, " \t")
	if start < 0 || (space >= 0 && space < start) {
		return firstToken(s)
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return protocolNames(s[start+1:])
	}
	if start > end {
		return firstToken(s)
	}
	return protocolNames(s[start+1 : end])
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func protocolNames(list string) string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := firstToken(part); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

// SplitProtocolList splits a simplified protocol list into its names.
func SplitProtocolList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
