package skills

import (
	"path/filepath"

	"maze/internal/nlu"
)

// App maps a spoken alias to the program launched on each platform. An
// empty target means the platform has no equivalent.
type App struct {
	Alias   string
	Windows string
	Linux   string
	Darwin  string
}

func (a App) Target(goos string) string {
	switch goos {
	case "windows":
		return a.Windows
	case "darwin":
		return a.Darwin
	default:
		return a.Linux
	}
}

// Apps is checked in order; the first matching alias wins.
var Apps = []App{
	{"notepad", "notepad.exe", "gedit", "open -a TextEdit"},
	{"calculator", "calc.exe", "gnome-calculator", "open -a Calculator"},
	{"open calculator", "calc.exe", "gnome-calculator", "open -a Calculator"},
	{"open calc", "calc.exe", "gnome-calculator", "open -a Calculator"},
	{"paint", "mspaint.exe", "pinta", "open -a Preview"},
	{"explorer", "explorer.exe", "nautilus", "open -a Finder"},
	{"file explorer", "explorer.exe", "nautilus", "open -a Finder"},
	{"files", "explorer.exe", "nautilus", "open -a Finder"},
	{"task manager", "taskmgr.exe", "gnome-system-monitor", "open -a 'Activity Monitor'"},
	{"cmd", "cmd.exe", "x-terminal-emulator", "open -a Terminal"},
	{"command prompt", "cmd.exe", "x-terminal-emulator", "open -a Terminal"},
	{"terminal", "cmd.exe", "x-terminal-emulator", "open -a Terminal"},
	{"powershell", "powershell.exe", "pwsh", "pwsh"},
	{"settings", "ms-settings:", "gnome-control-center", "x-apple.systempreferences:"},
	{"vs code", "code", "code", "code"},
	{"vscode", "code", "code", "code"},
	{"visual studio", "code", "code", "code"},
	{"snipping tool", "snippingtool.exe", "gnome-screenshot -i", "open -a Screenshot"},
	{"screenshot", "snippingtool.exe", "gnome-screenshot -i", "open -a Screenshot"},
	{"snip", "snippingtool.exe", "gnome-screenshot -i", "open -a Screenshot"},
	{"word", "winword.exe", "libreoffice --writer", "open -a 'Microsoft Word'"},
	{"excel", "excel.exe", "libreoffice --calc", "open -a 'Microsoft Excel'"},
	{"powerpoint", "powerpnt.exe", "libreoffice --impress", "open -a 'Microsoft PowerPoint'"},
	{"outlook", "outlook.exe", "thunderbird", "open -a 'Microsoft Outlook'"},
	{"photos", "ms-photos:", "eog", "open -a Photos"},
	{"camera", "microsoft.windows.camera:", "cheese", "open -a 'Photo Booth'"},
	{"clock", "ms-clock:", "gnome-clocks", "open -a Clock"},
	{"calendar", "outlookcal:", "gnome-calendar", "open -a Calendar"},
	{"maps", "bingmaps:", "gnome-maps", "open -a Maps"},
	{"store", "ms-windows-store:", "gnome-software", "open -a 'App Store'"},
	{"xbox", "xbox:", "", ""},
}

// Browser maps an alias to install locations tried in order. The last
// candidate doubles as the default invocation.
type Browser struct {
	Alias      string
	Candidates []string
}

// BrowsersFor returns the browser table for goos. home expands per-user
// install paths.
func BrowsersFor(goos, home string) []Browser {
	var chrome, brave, edge, firefox []string

	switch goos {
	case "windows":
		chrome = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			filepath.Join(home, `AppData\Local\Google\Chrome\Application\chrome.exe`),
		}
		brave = []string{
			`C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`,
			`C:\Program Files (x86)\BraveSoftware\Brave-Browser\Application\brave.exe`,
			filepath.Join(home, `AppData\Local\BraveSoftware\Brave-Browser\Application\brave.exe`),
		}
		edge = []string{"msedge.exe"}
		firefox = []string{"firefox.exe"}
	case "darwin":
		chrome = []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "open -a 'Google Chrome'"}
		brave = []string{"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser", "open -a 'Brave Browser'"}
		edge = []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge", "open -a 'Microsoft Edge'"}
		firefox = []string{"/Applications/Firefox.app/Contents/MacOS/firefox", "open -a Firefox"}
	default:
		chrome = []string{"/usr/bin/google-chrome", "/usr/bin/google-chrome-stable", "/snap/bin/chromium", "google-chrome"}
		brave = []string{"/usr/bin/brave-browser", "/snap/bin/brave", "brave-browser"}
		edge = []string{"/usr/bin/microsoft-edge", "microsoft-edge"}
		firefox = []string{"/usr/bin/firefox", "/snap/bin/firefox", "firefox"}
	}

	return []Browser{
		{"chrome", chrome},
		{"google chrome", chrome},
		{"brave", brave},
		{"edge", edge},
		{"microsoft edge", edge},
		{"firefox", firefox},
		{"browser", chrome},
	}
}

// Website maps an alias to a URL.
type Website struct {
	Alias string
	URL   string
}

// Websites is checked in order; the first alias found in the command wins.
var Websites = []Website{
	{"github", "https://github.com"},
	{"stackoverflow", "https://stackoverflow.com"},
	{"stack overflow", "https://stackoverflow.com"},
	{"gmail", "https://mail.google.com"},
	{"email", "https://mail.google.com"},
	{"mail", "https://mail.google.com"},
	{"whatsapp", "https://web.whatsapp.com"},
	{"telegram", "https://web.telegram.org"},
	{"discord", "https://discord.com/app"},
	{"instagram", "https://instagram.com"},
	{"twitter", "https://twitter.com"},
	{"linkedin", "https://linkedin.com"},
	{"facebook", "https://facebook.com"},
	{"reddit", "https://reddit.com"},
	{"pinterest", "https://pinterest.com"},
	{"snapchat", "https://web.snapchat.com"},
	{"threads", "https://threads.net"},
	{"chatgpt", "https://chat.openai.com"},
	{"gemini", "https://gemini.google.com"},
	{"claude", "https://claude.ai"},
	{"spotify", "https://open.spotify.com"},
	{"netflix", "https://netflix.com"},
	{"hotstar", "https://hotstar.com"},
	{"prime video", "https://primevideo.com"},
	{"amazon prime", "https://primevideo.com"},
	{"amazon", "https://amazon.in"},
	{"flipkart", "https://flipkart.com"},
	{"myntra", "https://myntra.com"},
	{"google drive", "https://drive.google.com"},
	{"google docs", "https://docs.google.com"},
	{"notion", "https://notion.so"},
	{"canva", "https://canva.com"},
	{"figma", "https://figma.com"},
	{"udemy", "https://udemy.com"},
	{"coursera", "https://coursera.org"},
	{"geeksforgeeks", "https://geeksforgeeks.org"},
	{"leetcode", "https://leetcode.com"},
	{"w3schools", "https://w3schools.com"},
}

// Stop words removed from spoken queries, whole tokens only.
var (
	videoStopWords = nlu.NewWordSet(
		"open", "youtube", "search", "play", "on", "and", "in", "find", "for",
		"video", "the", "a", "me", "show", "you", "tube", "please", "song", "music",
	)
	queryFillers    = nlu.NewWordSet("search", "open", "for", "about", "the")
	wikiStopWords   = queryFillers.With("wikipedia", "wiki", "on")
	googleStopWords = queryFillers.With("google", "look", "up", "find")
)

var motivationalQuotes = []string{
	"The only way to do great work is to love what you do. Keep pushing.",
	"You're one project away from changing your life. Don't stop now.",
	"Discipline beats motivation every single day. Stay consistent.",
	"The code you write today is the career you build tomorrow.",
	"Small daily improvements lead to stunning results. Keep going.",
	"Don't watch the clock. Do what it does. Keep going.",
	"Your future self will thank you for the work you put in today.",
	"Every expert was once a beginner. You're on the right path.",
	"Success is not final, failure is not fatal. Keep coding.",
	"Belief in yourself is the first step to building something great.",
}

var jokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"There are only 10 types of people in the world. Those who understand binary and those who don't.",
	"A SQL query walks into a bar, walks up to two tables and asks, Can I join you?",
	"Why do Java developers wear glasses? Because they can't C sharp.",
	"What's a programmer's favorite hangout place? Foo Bar.",
	"Why was the JavaScript developer sad? Because he didn't Node how to Express himself.",
	"How many programmers does it take to change a light bulb? None. That's a hardware problem.",
	"What is a programmer's favorite snack? Microchips.",
	"Why did the developer go broke? Because he used up all his cache.",
}

var thanksReplies = []string{
	"Anytime! That's what I'm here for.",
	"Always. Keep building!",
	"You're welcome. Let's keep going.",
	"Happy to help. What's next?",
}
