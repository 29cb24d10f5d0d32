package ws

import (
	"math/rand"
	"strings"
	"time"
)

// Bot is a scripted chat participant. Bots only ever talk back to the
// client that triggered them; they are not room members.
type Bot struct {
	Name  string
	Lines []string
}

var roster = []Bot{
	{Name: "PAZE", Lines: []string{
		"I'm not procrastinating, I'm prioritizing relaxation.",
		"Budgeted my energy today. Turns out the budget was zero.",
		"BRB, optimizing my vibe-to-work ratio.",
	}},
	{Name: "PrDeep", Lines: []string{
		"I went so deep I found my past TODOs judging me.",
		"If it compiles, ship it. If it doesn’t, ship a philosophy essay.",
		"Edge case discovered: reality.",
	}},
	{Name: "SHAIVATE", Lines: []string{
		"Refactored my coffee into bugs.",
		"Added a feature: it’s called hope.",
		"Unit tests? I prefer unity with the tests.",
	}},
	{Name: "MITRA", Lines: []string{
		"Mentored my code. It asked for a raise.",
		"Scheduled downtime for my neurons.",
		"Follow the data, but bring snacks.",
	}},
	{Name: "MACRO", Lines: []string{
		"Automated breakfast. Now debugging the toaster.",
		"Shortcut key for life please.",
		"If it’s repetitive, I scripted it. Including small talk.",
	}},
	{Name: "RB", Lines: []string{
		"Rebuilt the build. Now it builds character.",
		"Latency fixed: moved the goalposts closer.",
		"My favorite color is ‘#00FFSuccess’.",
	}},
}

var greetings = []struct {
	Name string
	Text string
}{
	{"PAZE", "Welcome to the UNIUN chat—mind the memes."},
	{"PrDeep", "Context loaded. Jokes compiling…"},
}

// findBot resolves a bot by name, case-insensitively.
func findBot(name string) *Bot {
	for i := range roster {
		if strings.EqualFold(roster[i].Name, name) {
			return &roster[i]
		}
	}
	return nil
}

// randomLine picks one of the bot's canned lines.
func (b *Bot) randomLine() string {
	return b.Lines[rand.Intn(len(b.Lines))]
}

// pickBots returns n distinct random bots from the roster.
func pickBots(n int) []Bot {
	idx := rand.Perm(len(roster))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Bot, 0, n)
	for _, i := range idx[:n] {
		out = append(out, roster[i])
	}
	return out
}

// greet sends the welcome lines to a fresh session after a short random
// delay, mimicking people noticing the newcomer.
func (s *Session) greet() {
	for _, g := range greetings {
		g := g
		delay := time.Duration(100+rand.Intn(300)) * time.Millisecond
		time.AfterFunc(delay, func() {
			s.sendJSON(map[string]any{"type": "message", "author": g.Name, "text": g.Text})
		})
	}
}

// scheduleBotReplies answers a chat message, to the sender only. When the
// message names a bot, that bot answers once; otherwise three random bots
// chime in, staggered.
func (s *Session) scheduleBotReplies(botName string) {
	base := s.hub.replyDelay

	if bot := findBot(botName); bot != nil {
		line := bot.randomLine()
		name := bot.Name
		time.AfterFunc(base, func() {
			s.sendJSON(map[string]any{"type": "message", "author": name, "text": line})
		})
		return
	}

	for i, bot := range pickBots(3) {
		line := bot.randomLine()
		name := bot.Name
		delay := base + time.Duration(i)*(base+50*time.Millisecond)
		time.AfterFunc(delay, func() {
			s.sendJSON(map[string]any{"type": "message", "author": name, "text": line})
		})
	}
}
