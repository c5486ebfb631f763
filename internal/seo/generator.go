package seo

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

const (
	maxTitleLength       = 70
	maxTags              = 15
	thumbnailTitleLength = 40
)

var boosterTags = []string{"viral", "trending", "2024", "tutorial", "guide", "tips"}

// Metadata is the templated SEO bundle for a single video. Despite the
// package name there is no AI involved; everything is static template
// substitution over the library tables.
type Metadata struct {
	Title           string
	Description     string
	Tags            []string
	Hashtags        string
	ThumbnailPrompt string
}

// Generator picks titles and keywords from a Library. The random source is
// injected so callers can seed it for reproducible output; a mutex guards it
// because one generator serves every request goroutine and *rand.Rand is not
// safe for concurrent use.
type Generator struct {
	library *Library

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(library *Library, rng *rand.Rand) *Generator {
	return &Generator{library: library, rng: rng}
}

// Generate builds a metadata bundle for the given category and language.
// Unknown categories fall back to the default tables; there are no error
// paths. Safe for concurrent use.
func (g *Generator) Generate(category, language string) Metadata {
	titles := g.library.titlesFor(category)
	keywords := g.library.keywordsFor(category)

	g.mu.Lock()
	titleIdx := g.rng.Intn(len(titles))
	keywordIdx := g.rng.Intn(len(keywords))
	g.mu.Unlock()

	title := truncate(titles[titleIdx], maxTitleLength)
	keyword := keywords[keywordIdx]

	hashtags := buildHashtags(category, keyword, language)

	return Metadata{
		Title:           title,
		Description:     buildDescription(category, keyword, keywords, hashtags),
		Tags:            buildTags(category, keywords),
		Hashtags:        hashtags,
		ThumbnailPrompt: buildThumbnailPrompt(title, category),
	}
}

func buildHashtags(category, keyword, language string) string {
	lang := "youtube"
	if language != "" && language != "en" {
		lang = language
	}
	return fmt.Sprintf("#%s #%s #viral #trending #%s",
		hashtagToken(category), hashtagToken(keyword), hashtagToken(lang))
}

// hashtagToken collapses multi-word values ("day in the life") into a single
// #-safe token.
func hashtagToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func buildDescription(category, keyword string, keywords []string, hashtags string) string {
	return fmt.Sprintf(`🎯 Welcome to this %[1]s content!

In this video, we'll explore %[2]s and provide you with valuable insights and information.

⭐ Key Highlights:
• Comprehensive %[1]s content
• Expert tips and techniques
• Everything you need to know about %[2]s

🔔 Subscribe for more %[1]s content!
👍 Like if you found this helpful!
💬 Comment your thoughts below!

%[3]s

📱 Connect with us:
• Like & Subscribe for more content
• Turn on notifications 🔔
• Share with friends who'd love this

Tags: %[4]s, %[1]s, content, tutorial, guide, tips, tricks, 2024, best, ultimate, complete

Thank you for watching! ❤️`, category, keyword, hashtags, strings.Join(keywords, ", "))
}

func buildTags(category string, keywords []string) []string {
	tags := make([]string, 0, len(keywords)+1+len(boosterTags))
	tags = append(tags, keywords...)
	tags = append(tags, category)
	tags = append(tags, boosterTags...)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

func buildThumbnailPrompt(title, category string) string {
	return fmt.Sprintf("Create an eye-catching YouTube thumbnail with bold text %q, "+
		"vibrant colors (red, yellow, blue), high contrast, professional look, "+
		"%s theme, engaging visuals, 1280x720px",
		truncate(title, thumbnailTitleLength), category)
}

// truncate cuts at rune boundaries so emoji in titles survive.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
