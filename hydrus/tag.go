package hydrus

import "strings"

// ServiceKey identifies a hydrus service such as a tag repository.
type ServiceKey string

// MyTags is the key of the default local tag service.
const MyTags ServiceKey = "6c6f63616c2074616773"

// Tag is a namespaced tag. Tags without a namespace have an empty Namespace.
type Tag struct {
	Namespace string
	Name      string
}

// ParseTag splits "namespace:name". A leading colon is part of the name, so
// ":)" stays an unnamespaced tag.
func ParseTag(s string) Tag {
	if i := strings.Index(s, ":"); i > 0 {
		return Tag{Namespace: s[:i], Name: s[i+1:]}
	}
	return Tag{Name: s}
}

// String renders the tag the way hydrus stores it.
func (t Tag) String() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + ":" + t.Name
}

func tagStrings(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

func parseTags(values []string) []Tag {
	out := make([]Tag, 0, len(values))
	for _, v := range values {
		out = append(out, ParseTag(v))
	}
	return out
}
