package skills

import (
	"context"
	"fmt"
	"strings"

	"maze/internal/nlu"
)

var (
	greetingWords      = []string{"hello", "hi", "hey", "heyy", "howdy", "yo", "hola", "namaste"}
	greetingPhrases    = []string{"what's up", "whats up"}
	greetingSuppressed = []string{"open", "search", "youtube", "google", "task", "calculate", "notepad", "chrome", "show"}

	learningTriggers = []string{"teach me", "learn about", "explain", "tutorial", "how to", "what is a", "how does", "learn "}
	learningFillers  = []string{"teach me", "learn about", "learn", "explain", "tutorial", "how to", "how does", "what is a", "about", "me"}
)

const (
	identityReply = "I am MAZE, your personal AI assistant. Built to help you learn, " +
		"build, and grow. I can open apps, search the web, manage tasks, " +
		"do math, motivate you, and much more. All for free!"

	capabilitiesReply = "I can open apps like Notepad, Chrome, Brave, VS Code, and Paint. " +
		"I play songs on YouTube, search Google and Wikipedia. " +
		"I manage tasks and notes. I open WhatsApp, Instagram, GitHub. " +
		"I control volume and brightness. " +
		"I do math, tell time, motivate you, and tell jokes. Just ask!"

	statusReply = "All systems running perfectly. I'm always ready to help. What do you need?"

	clockLayout = "03:04 PM"
	dateLayout  = "Monday, January 02, 2006"
)

// Greeting answers a bare greeting by time of day. Greetings that also
// carry an action keyword ("hi, open chrome") are left to other handlers.
func (k *Kit) Greeting(_ context.Context, cmd string) (string, bool) {
	if !nlu.HasWord(cmd, greetingWords...) && !nlu.ContainsAny(cmd, greetingPhrases...) {
		return "", false
	}
	if nlu.ContainsAny(cmd, greetingSuppressed...) {
		return "", false
	}

	switch hour := k.Now().Hour(); {
	case hour < 12:
		return "Good morning! MAZE is ready. What's your mission today?", true
	case hour < 17:
		return "Good afternoon! What can I help you with?", true
	case hour < 21:
		return "Good evening! Ready to get productive?", true
	default:
		return "Good night! What are we working on?", true
	}
}

func (k *Kit) Identity(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "who are you", "who r u", "hu r u", "your name",
		"what are you", "what r u", "what is your name",
		"tell me about yourself", "introduce yourself") {
		return identityReply, true
	}
	return "", false
}

func (k *Kit) Capabilities(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "what can you do", "your capabilities", "help me", "what do you do", "features") ||
		strings.TrimSpace(cmd) == "help" {
		return capabilitiesReply, true
	}
	return "", false
}

// Time answers clock questions. A bare "time" word counts unless the
// command is about tasks, opening things or multiplication.
func (k *Kit) Time(_ context.Context, cmd string) (string, bool) {
	asked := nlu.ContainsAny(cmd, "what time", "the time", "current time", "clock") ||
		strings.TrimSpace(cmd) == "time" ||
		(nlu.HasWord(cmd, "time") && !nlu.ContainsAny(cmd, "task", "open", "youtube", "times"))
	if !asked {
		return "", false
	}

	now := k.Now()
	return fmt.Sprintf("It's %s on %s.", now.Format(clockLayout), now.Format(dateLayout)), true
}

func (k *Kit) Date(_ context.Context, cmd string) (string, bool) {
	c := strings.TrimSpace(cmd)
	if !nlu.ContainsAny(cmd, "what day", "today's date", "which day") && c != "date" && c != "today" {
		return "", false
	}
	return fmt.Sprintf("Today is %s.", k.Now().Format(dateLayout)), true
}

func (k *Kit) Motivation(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "motivate", "motivation", "inspire", "lazy", "feeling lazy",
		"push me", "encourage", "i can't", "i feel bad", "feeling down") {
		return k.pick(motivationalQuotes), true
	}
	return "", false
}

func (k *Kit) Joke(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "joke", "funny", "laugh", "humor") {
		return k.pick(jokes), true
	}
	return "", false
}

func (k *Kit) Status(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "how are you", "how r u", "you good", "status", "how do you do", "how you doing") {
		return statusReply, true
	}
	return "", false
}

func (k *Kit) Thanks(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "thank", "thanks", "thx", "appreciate") {
		return k.pick(thanksReplies), true
	}
	return "", false
}

// GoodDay answers "good morning" style salutations with the time.
func (k *Kit) GoodDay(_ context.Context, cmd string) (string, bool) {
	if nlu.ContainsAny(cmd, "good morning", "good evening", "good night", "good afternoon") {
		return fmt.Sprintf("Hey! It's %s. What are we working on?", k.Now().Format(clockLayout)), true
	}
	return "", false
}

// Learning turns "teach me X" into a tutorial search for X.
func (k *Kit) Learning(ctx context.Context, cmd string) (string, bool) {
	if !nlu.ContainsAny(cmd, learningTriggers...) {
		return "", false
	}

	topic := nlu.StripPhrases(cmd, learningFillers...)
	if topic == "" {
		return "What topic would you like to learn about?", true
	}
	k.openURL(ctx, googleSearch+quote(topic+" tutorial"))
	return fmt.Sprintf("Let me find learning resources for %s. Opening search now.", topic), true
}

// Tutorial handles "<topic> tutorial".
func (k *Kit) Tutorial(ctx context.Context, cmd string) (string, bool) {
	if !strings.Contains(cmd, "tutorial") {
		return "", false
	}

	topic := strings.TrimSpace(strings.ReplaceAll(cmd, "tutorial", ""))
	if topic == "" {
		return "What tutorial are you looking for?", true
	}
	k.openURL(ctx, googleSearch+quote(topic+" tutorial"))
	return fmt.Sprintf("Searching for %s tutorials.", topic), true
}

// Fallback echoes a command nothing else understood.
func (k *Kit) Fallback(_ context.Context, cmd string) (string, bool) {
	return fmt.Sprintf("I heard: '%s'. I'm not sure what to do with that. "+
		"Try commands like: open notepad, search python, add task, "+
		"calculate 25 times 4, tell me a joke, or motivate me!", cmd), true
}
