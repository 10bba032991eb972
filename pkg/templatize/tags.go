package templatize

import (
	"regexp"
	"strings"
)

// TagKind classifies a placeholder tag
type TagKind int

const (
	TagVariable TagKind = iota
	TagLoopOpen
	TagInvertedOpen
	TagLoopClose
	TagCurrentItem
	TagEmpty
)

func (k TagKind) String() string {
	switch k {
	case TagVariable:
		return "variable"
	case TagLoopOpen:
		return "loop"
	case TagInvertedOpen:
		return "inverted"
	case TagLoopClose:
		return "close"
	case TagCurrentItem:
		return "item"
	case TagEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Opens reports whether the tag starts a section that a close tag must end
func (k TagKind) Opens() bool {
	return k == TagLoopOpen || k == TagInvertedOpen
}

// Tag is one placeholder found in a piece of text
type Tag struct {
	Kind TagKind
	// Name is the variable path or section name without its sigil
	Name string
	// Raw is the tag as written, braces included
	Raw string
	// Offset is the byte offset of Raw in the scanned text
	Offset int
}

var (
	// Regular expression to match placeholder tags
	tagRegex = regexp.MustCompile(`\{([^{}]*)\}`)
)

// ScanTags finds every placeholder tag in text
func ScanTags(text string) []Tag {
	matches := tagRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tags := make([]Tag, 0, len(matches))
	for _, match := range matches {
		tag := parseTag(text[match[2]:match[3]])
		tag.Raw = text[match[0]:match[1]]
		tag.Offset = match[0]
		tags = append(tags, tag)
	}
	return tags
}

// parseTag determines the kind of tag from its content
func parseTag(content string) Tag {
	content = strings.TrimSpace(content)
	if content == "" {
		return Tag{Kind: TagEmpty}
	}

	switch content[0] {
	case '#':
		return Tag{Kind: TagLoopOpen, Name: strings.TrimSpace(content[1:])}
	case '^':
		return Tag{Kind: TagInvertedOpen, Name: strings.TrimSpace(content[1:])}
	case '/':
		return Tag{Kind: TagLoopClose, Name: strings.TrimSpace(content[1:])}
	}

	if content == "." {
		return Tag{Kind: TagCurrentItem, Name: "."}
	}
	return Tag{Kind: TagVariable, Name: content}
}

// FindTags returns the raw text of every tag in input.
// This is a utility function for debugging and analysis
func FindTags(input string) []string {
	matches := tagRegex.FindAllString(input, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
