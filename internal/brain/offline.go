package brain

import (
	"context"
	log "log/slog"
	"strings"

	"maze/internal/nlu"
	"maze/internal/skills"
)

// Route pairs a gate with a skill. A nil gate always passes.
type Route struct {
	Name  string
	Gate  func(cmd string) bool
	Skill skills.Skill
}

// maxBareAppWords keeps a long sentence that happens to name an app from
// launching it.
const maxBareAppWords = 3

// Routes returns the offline cascade in priority order. Overlapping keyword
// sets make the order significant.
func Routes(k *skills.Kit) []Route {
	f := func(fn func(context.Context, string) (string, bool)) skills.Skill { return skills.SkillFunc(fn) }

	return []Route{
		{Name: "greeting", Skill: f(k.Greeting)},
		{Name: "identity", Skill: f(k.Identity)},
		{Name: "capabilities", Skill: f(k.Capabilities)},
		{Name: "time", Skill: f(k.Time)},
		{Name: "date", Skill: f(k.Date)},
		{Name: "video", Gate: isVideo, Skill: f(k.Search)},
		{Name: "open", Gate: isOpen, Skill: f(k.OpenBundle)},
		{Name: "app", Gate: func(cmd string) bool {
			return nlu.WordCount(cmd) <= maxBareAppWords && k.MentionsApp(cmd)
		}, Skill: f(k.OpenApp)},
		{Name: "search", Skill: f(k.Search)},
		{Name: "website", Skill: f(k.Website)},
		{Name: "tasks", Skill: f(k.Tasks)},
		{Name: "notes", Skill: f(k.Notes)},
		{Name: "system", Skill: f(k.System)},
		{Name: "math", Gate: skills.IsMath, Skill: f(k.Math)},
		{Name: "motivation", Skill: f(k.Motivation)},
		{Name: "jokes", Skill: f(k.Joke)},
		{Name: "status", Skill: f(k.Status)},
		{Name: "thanks", Skill: f(k.Thanks)},
		{Name: "good-day", Skill: f(k.GoodDay)},
		{Name: "learning", Skill: f(k.Learning)},
		{Name: "tutorial", Skill: f(k.Tutorial)},
		{Name: "default", Skill: f(k.Fallback)},
	}
}

func isVideo(cmd string) bool {
	return strings.Contains(cmd, "youtube") || nlu.HasWord(cmd, "play")
}

func isOpen(cmd string) bool {
	return nlu.ContainsAny(cmd, skills.OpenVerbs...)
}

// Offline answers commands without any network model.
type Offline struct {
	routes []Route
}

func NewOffline(k *skills.Kit) *Offline {
	return NewOfflineRoutes(Routes(k))
}

// NewOfflineRoutes builds a dispatcher over a custom route table.
func NewOfflineRoutes(routes []Route) *Offline {
	return &Offline{routes: routes}
}

// Respond normalizes raw and returns the first route's answer.
func (o *Offline) Respond(ctx context.Context, raw string) string {
	_, reply := o.Classify(ctx, nlu.Normalize(raw))
	return reply
}

// Classify runs the cascade over an already normalized command and names
// the route that answered.
func (o *Offline) Classify(ctx context.Context, cmd string) (route, reply string) {
	for _, r := range o.routes {
		if r.Gate != nil && !r.Gate(cmd) {
			continue
		}
		if reply, ok := r.Skill.Try(ctx, cmd); ok {
			log.Debug("Offline route", "route", r.Name, "cmd", cmd)
			return r.Name, reply
		}
	}
	return "", ""
}
