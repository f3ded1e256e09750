// Package vault preprocesses Obsidian-style markdown notes before
// chunking: frontmatter extraction, inline tag collection, wikilink and
// image-embed rewriting. The rewrites run in a fixed order because chunk
// boundaries are computed over the rewritten text.
package vault

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/corpus-cli/internal/logger"
)

var (
	// frontmatterRe matches a leading YAML frontmatter block.
	frontmatterRe = regexp.MustCompile(`(?s)\A---\n(.*?)\n---\n?`)

	// tagRe matches inline #tag tokens, including nested tags like #a/b.
	tagRe = regexp.MustCompile(`#([a-zA-Z0-9_\-/]+)`)

	// imageRe matches embedded images: ![[asset.png]].
	// Matched before wikiLinkRe so the embed marker is not consumed
	// as a plain link.
	imageRe = regexp.MustCompile(`!\[\[(.*?)\]\]`)

	// wikiLinkRe matches [[target]] and [[target|label]].
	wikiLinkRe = regexp.MustCompile(`\[\[([^\]|]*)(?:\|([^\]]*))?\]\]`)
)

// Note is a preprocessed vault note ready for chunking.
type Note struct {
	// Body is the note text after all rewrites, frontmatter removed.
	Body string

	// Frontmatter holds the parsed header block. Nil when absent.
	Frontmatter map[string]any

	// Tags lists inline #tag tokens in first-seen order, deduplicated.
	Tags []string
}

// ParseNote preprocesses raw note content. Rewrites are applied once, in
// a fixed order: frontmatter, tags, images, wikilinks.
func ParseNote(content string) Note {
	frontmatter, body := extractFrontmatter(content)
	tags := extractTags(body)
	body = rewriteImages(body)
	body = rewriteWikiLinks(body)

	return Note{
		Body:        strings.TrimSpace(body),
		Frontmatter: frontmatter,
		Tags:        tags,
	}
}

// extractFrontmatter parses and removes a leading YAML header block.
// A malformed block is left in place and logged rather than failing the
// note: one bad header must not drop a note from the index.
func extractFrontmatter(content string) (map[string]any, string) {
	m := frontmatterRe.FindStringSubmatch(content)
	if m == nil {
		return nil, content
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal([]byte(m[1]), &frontmatter); err != nil {
		logger.Warn("malformed frontmatter left in note body: %v", err)
		return nil, content
	}

	return frontmatter, strings.TrimPrefix(content, m[0])
}

// extractTags collects inline #tag tokens. Tags stay in the body text;
// they carry meaning in context and removal would shift chunk boundaries
// for no gain.
func extractTags(body string) []string {
	matches := tagRe.FindAllStringSubmatch(body, -1)
	if matches == nil {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		tags = append(tags, m[1])
	}
	return tags
}

// rewriteImages replaces image embeds with a textual placeholder naming
// the asset.
func rewriteImages(body string) string {
	return imageRe.ReplaceAllString(body, "[Image: $1]")
}

// rewriteWikiLinks replaces wiki-style links with their display label,
// or the target when no label is given.
func rewriteWikiLinks(body string) string {
	return wikiLinkRe.ReplaceAllStringFunc(body, func(link string) string {
		m := wikiLinkRe.FindStringSubmatch(link)
		if m[2] != "" {
			return m[2]
		}
		return m[1]
	})
}
