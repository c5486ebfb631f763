package seo

// Library holds the per-category title and keyword tables the generator
// draws from. It is built once at startup and never mutated afterwards.
type Library struct {
	titles           map[string][]string
	keywords         map[string][]string
	fallbackCategory string
	fallbackKeywords []string
}

// Categories returns the category names the library knows about.
func (l *Library) Categories() []string {
	names := make([]string, 0, len(l.keywords))
	for name := range l.keywords {
		names = append(names, name)
	}
	return names
}

func (l *Library) titlesFor(category string) []string {
	if titles, ok := l.titles[category]; ok {
		return titles
	}
	return l.titles[l.fallbackCategory]
}

func (l *Library) keywordsFor(category string) []string {
	if keywords, ok := l.keywords[category]; ok {
		return keywords
	}
	return l.fallbackKeywords
}

// DefaultLibrary returns the built-in content tables.
func DefaultLibrary() *Library {
	return &Library{
		fallbackCategory: "tech",
		fallbackKeywords: []string{"video", "content", "entertainment"},
		keywords: map[string][]string{
			"tech":      {"technology", "software", "tutorial", "review", "guide", "tips", "tricks"},
			"vlog":      {"vlog", "daily", "life", "lifestyle", "day in the life", "routine"},
			"shorts":    {"shorts", "short", "quick", "viral", "trending", "funny"},
			"gaming":    {"gaming", "gameplay", "walkthrough", "guide", "tips", "stream", "playthrough"},
			"tutorial":  {"tutorial", "how to", "guide", "step by step", "learn", "tips", "beginner"},
			"music":     {"music", "song", "cover", "remix", "beats", "playlist", "audio"},
			"education": {"education", "learning", "explained", "science", "facts", "study", "lesson"},
		},
		titles: map[string][]string{
			"tech": {
				"🚀 Ultimate Tech Review: Game-Changing Features Revealed",
				"💡 Tech Tutorial: Master This in 10 Minutes",
				"⚡ Tech Tips & Tricks You NEED to Know in 2024",
				"🔥 Complete Tech Guide: Everything You Need",
				"✨ Revolutionary Tech: Full Review & Demo",
			},
			"vlog": {
				"📸 Day in My Life: You Won't Believe What Happened",
				"🌟 My Daily Routine: Behind the Scenes",
				"💫 Life Update: Exciting News & Changes",
				"🎬 Real Life Vlog: Unfiltered & Authentic",
				"✨ A Day With Me: Morning to Night Routine",
			},
			"shorts": {
				"😂 Hilarious Moment Caught on Camera",
				"🔥 Mind-Blowing 60 Second Challenge",
				"💥 Viral Trend: We Tried It & Here's What Happened",
				"⚡ Quick Tips That Actually Work",
				"🎯 Watch This Before Scrolling Away",
			},
			"gaming": {
				"🎮 Epic Gaming Moments: Unbelievable Gameplay",
				"🏆 Pro Gamer Tips: Level Up Your Skills",
				"🔥 Complete Gaming Walkthrough: All Secrets Revealed",
				"⚔️ Ultimate Gaming Guide: Win Every Match",
				"💎 Hidden Gaming Secrets & Easter Eggs",
			},
			"tutorial": {
				"📚 Complete Tutorial: Beginner to Pro in Minutes",
				"🎓 Step-by-Step Guide: Easy to Follow",
				"✅ How To Tutorial: Anyone Can Do This",
				"🔧 Ultimate Guide: Master This Skill Today",
				"💡 Quick Tutorial: Learn the Easy Way",
			},
			"music": {
				"🎵 This Song Will Be Stuck in Your Head All Day",
				"🎧 Incredible Cover: Better Than the Original?",
				"🎤 New Music Alert: You Heard It Here First",
				"🔥 Ultimate Playlist: Every Track a Banger",
				"✨ Studio Session: Behind the Music",
			},
			"education": {
				"🧠 Explained in 5 Minutes: Everything You Need to Know",
				"📖 The Surprising Science Behind Everyday Things",
				"🎓 Learn This Faster Than Anyone Else",
				"💡 Facts That Will Change How You See the World",
				"🔬 Deep Dive: The Complete Breakdown",
			},
		},
	}
}
