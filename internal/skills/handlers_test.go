package skills

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maze/internal/desktop"
	"maze/internal/store"
)

func TestTasksLifecycle(t *testing.T) {
	k, _, _ := newTestKit(t)

	steps := []struct{ cmd, want string }{
		{"show tasks", "You have no tasks yet. Say 'add task' followed by the task name to add one."},
		{"add task buy milk", "Task added: buy milk. You now have 1 pending tasks."},
		{"new task call mom", "Task added: call mom. You now have 2 pending tasks."},
		{"show my tasks", "You have 2 pending tasks. Task 1: buy milk. Task 2: call mom."},
		{"complete task 1", "Nice! Task 'buy milk' is done. Keep going!"},
		{"list tasks", "You have 1 pending tasks. Task 1: call mom. And 1 completed."},
		// numbering is positional: 1 now names the next pending task
		{"complete task 1", "Nice! Task 'call mom' is done. Keep going!"},
		{"what are my tasks", "All tasks completed! You've finished 2 tasks. Great work!"},
		{"clear all tasks", "All tasks cleared. Fresh start."},
		{"show tasks", "You have no tasks yet. Say 'add task' followed by the task name to add one."},
	}
	for _, s := range steps {
		if got := mustTry(t, k.Tasks, s.cmd); got != s.want {
			t.Fatalf("%q: got %q, want %q", s.cmd, got, s.want)
		}
	}
}

func TestTasksPersist(t *testing.T) {
	k, _, _ := newTestKit(t)
	mustTry(t, k.Tasks, "add task write report")

	reopened, err := store.OpenTaskList(k.TaskList.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if p := reopened.Pending(); len(p) != 1 || p[0].Description != "write report" {
		t.Fatalf("pending after reopen: %+v", p)
	}
}

func TestTasksPrompts(t *testing.T) {
	k, _, _ := newTestKit(t)
	mustTry(t, k.Tasks, "add task one")

	const which = "Which task? Say 'complete task 1', 'complete task 2', etc."
	cases := map[string]string{
		"add task":          "What task do you want to add? Say 'add task' followed by the task name.",
		"complete task":     which,
		"complete task 7":   which,
		"mark task 0":       which,
		"finish task 1 2 3": "Nice! Task 'one' is done. Keep going!",
	}
	for cmd, want := range cases {
		if got := mustTry(t, k.Tasks, cmd); got != want {
			t.Fatalf("%q: got %q, want %q", cmd, got, want)
		}
	}
}

func TestTasksShowHeuristic(t *testing.T) {
	k, _, _ := newTestKit(t)
	for _, cmd := range []string{"see task", "pending task please", "can you show the task"} {
		if _, ok := k.Tasks(context.Background(), cmd); !ok {
			t.Fatalf("%q not treated as show", cmd)
		}
	}
	if _, ok := k.Tasks(context.Background(), "tell me a joke"); ok {
		t.Fatalf("unrelated command accepted")
	}
}

func TestNotesRoundTrip(t *testing.T) {
	k, d, _ := newTestKit(t)

	if got := mustTry(t, k.Notes, "show notes"); got != noNotes {
		t.Fatalf("got %q", got)
	}

	got := mustTry(t, k.Notes, "please note down buy eggs")
	if got != "Got it. Noted down: buy eggs. Opening the notes file." {
		t.Fatalf("got %q", got)
	}
	mustTry(t, k.Notes, "remember that the meeting moved")

	lines, err := k.NoteLog.Lines()
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines %v", lines)
	}
	if text := store.NoteText(lines[1]); text != "the meeting moved" {
		t.Fatalf("latest note %q", text)
	}

	got = mustTry(t, k.Notes, "show my notes")
	if !strings.HasPrefix(got, "You have 2 notes. Latest: [") || !strings.Contains(got, "] the meeting moved.") {
		t.Fatalf("got %q", got)
	}
	if len(d.files) != 3 || d.files[0] != k.NoteLog.Path() {
		t.Fatalf("opened %v", d.files)
	}

	if got := mustTry(t, k.Notes, "clear notes"); got != "All notes cleared." {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Notes, "read notes"); got != noNotes {
		t.Fatalf("got %q", got)
	}
}

func TestNotesEmptyContent(t *testing.T) {
	k, d, _ := newTestKit(t)
	d.goos = "windows"

	want := "What do you want me to note down? Say 'note down' followed by your message."
	if got := mustTry(t, k.Notes, "note down please"); got != want {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Notes, "jot down milk"); got != "Got it. Noted down: milk. Opening in Notepad." {
		t.Fatalf("got %q", got)
	}
}

func TestSystemVolume(t *testing.T) {
	cases := []struct {
		cmd   string
		reply string
		want  []press
	}{
		{"volume up", "Volume increased.", []press{{desktop.VolumeUp, 5}}},
		{"make it quieter", "Volume decreased.", []press{{desktop.VolumeDown, 5}}},
		{"unmute", "Volume muted. Say mute again to unmute.", []press{{desktop.VolumeMute, 1}}},
		{"max volume", "Volume set to maximum.", []press{{desktop.VolumeUp, 50}}},
		{"no volume", "Volume set to minimum.", []press{{desktop.VolumeDown, 50}}},
		{"set volume to 50", "Volume set to approximately 50 percent.", []press{{desktop.VolumeDown, 50}, {desktop.VolumeUp, 25}}},
	}
	for _, tc := range cases {
		k, d, _ := newTestKit(t)
		if got := mustTry(t, k.System, tc.cmd); got != tc.reply {
			t.Fatalf("%q: got %q", tc.cmd, got)
		}
		if len(d.presses) != len(tc.want) {
			t.Fatalf("%q: presses %v", tc.cmd, d.presses)
		}
		for i := range tc.want {
			if d.presses[i] != tc.want[i] {
				t.Fatalf("%q: presses %v, want %v", tc.cmd, d.presses, tc.want)
			}
		}
	}
}

func TestSystemBrightness(t *testing.T) {
	k, d, _ := newTestKit(t)
	d.brightness = 90

	if got := mustTry(t, k.System, "brightness up"); got != "Brightness increased to 100 percent." {
		t.Fatalf("got %q", got)
	}
	d.brightness = 15
	if got := mustTry(t, k.System, "dim the screen"); got != "Brightness decreased to 0 percent." {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.System, "minimum brightness"); got != "Brightness set to minimum." {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.System, "set brightness to 35"); got != "Brightness set to 35 percent." {
		t.Fatalf("got %q", got)
	}
	want := []int{100, 0, 10, 35}
	if len(d.setTo) != len(want) {
		t.Fatalf("set %v", d.setTo)
	}
	for i := range want {
		if d.setTo[i] != want[i] {
			t.Fatalf("set %v, want %v", d.setTo, want)
		}
	}

	if _, ok := k.System(context.Background(), "brightness 150"); ok {
		t.Fatalf("out of range level accepted")
	}
}

func TestSystemBrightnessUnavailable(t *testing.T) {
	k, d, _ := newTestKit(t)
	d.brightnessErr = desktop.ErrUnsupported

	if got := mustTry(t, k.System, "increase brightness"); got != "Brightness increased." {
		t.Fatalf("got %q", got)
	}
	if len(d.setTo) != 0 {
		t.Fatalf("brightness set without a reading: %v", d.setTo)
	}
}

func TestMath(t *testing.T) {
	k, _, _ := newTestKit(t)

	cases := map[string]string{
		"calculate 25 times 4":         "The answer is 100.",
		"what is 10 divided by 0":      calcFailed,
		"what is 2 to the power of 10": "The answer is 1024.",
		"what's 7 mod 3":               "The answer is 1.",
		"what is 2.5 plus 2.5":         "The answer is 5.",
		"calculate 10 over 4":          "The answer is 2.5.",
		"how much is 12x3":             "The answer is 36.",
		"calculate 9 minus 12":         "The answer is -3.",
		"solve (2 plus 3) multiply 4":  "The answer is 20.",
		"calculate (5 plus 2":          calcFailed,
	}
	for cmd, want := range cases {
		if got := mustTry(t, k.Math, cmd); got != want {
			t.Fatalf("%q: got %q, want %q", cmd, got, want)
		}
	}

	if _, ok := k.Math(context.Background(), "what is the weather"); ok {
		t.Fatalf("command without digits accepted")
	}
}

func TestMathExpressionNeverKeepsLetters(t *testing.T) {
	expr, ok := MathExpression("calculate __import__('os') 1")
	if !ok {
		t.Fatalf("expected a digit")
	}
	if strings.ContainsAny(expr, "abcdefghijklmnopqrstuvwxyz_'") {
		t.Fatalf("expr %q", expr)
	}
}

func TestGreeting(t *testing.T) {
	k, _, _ := newTestKit(t)

	if got := mustTry(t, k.Greeting, "hello"); got != "Good afternoon! What can I help you with?" {
		t.Fatalf("got %q", got)
	}
	for _, cmd := range []string{"hi open chrome", "hey show my tasks", "open youtube", "hi, there"} {
		if reply, ok := k.Greeting(context.Background(), cmd); ok {
			t.Fatalf("%q greeted: %q", cmd, reply)
		}
	}

	hours := map[int]string{
		8:  "Good morning! MAZE is ready. What's your mission today?",
		19: "Good evening! Ready to get productive?",
		23: "Good night! What are we working on?",
	}
	for h, want := range hours {
		at := fixedNow
		k.Now = func() time.Time { return time.Date(at.Year(), at.Month(), at.Day(), h, 0, 0, 0, time.Local) }
		if got := mustTry(t, k.Greeting, "whats up"); got != want {
			t.Fatalf("hour %d: got %q", h, got)
		}
	}
}

func TestTimeAndDate(t *testing.T) {
	k, _, _ := newTestKit(t)

	if got := mustTry(t, k.Time, "what time is it"); got != "It's 02:07 PM on Tuesday, March 05, 2024." {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Date, "today"); got != "Today is Tuesday, March 05, 2024." {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.GoodDay, "good morning maze"); got != "Hey! It's 02:07 PM. What are we working on?" {
		t.Fatalf("got %q", got)
	}
	for _, cmd := range []string{"calculate 2 times 3", "add task time sheet"} {
		if _, ok := k.Time(context.Background(), cmd); ok {
			t.Fatalf("%q treated as a time query", cmd)
		}
	}
}

func TestCannedPools(t *testing.T) {
	k, _, _ := newTestKit(t)

	if got := mustTry(t, k.Motivation, "motivate me"); got != motivationalQuotes[0] {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Joke, "tell me a joke"); got != jokes[0] {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Thanks, "thanks a lot"); got != thanksReplies[0] {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Status, "how are you"); got != statusReply {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Identity, "who are you"); got != identityReply {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Capabilities, "help"); got != capabilitiesReply {
		t.Fatalf("got %q", got)
	}
}

func TestLearningAndTutorial(t *testing.T) {
	k, d, _ := newTestKit(t)

	if got := mustTry(t, k.Learning, "teach me python"); got != "Let me find learning resources for python. Opening search now." {
		t.Fatalf("got %q", got)
	}
	if u := lastURL(t, d); u != "https://www.google.com/search?q=python%20tutorial" {
		t.Fatalf("url %q", u)
	}
	if got := mustTry(t, k.Learning, "explain"); got != "What topic would you like to learn about?" {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Tutorial, "rust tutorial"); got != "Searching for rust tutorials." {
		t.Fatalf("got %q", got)
	}
	if got := mustTry(t, k.Tutorial, "tutorial"); got != "What tutorial are you looking for?" {
		t.Fatalf("got %q", got)
	}
}

func TestFallbackEchoes(t *testing.T) {
	k, _, _ := newTestKit(t)
	got := mustTry(t, k.Fallback, "blorp")
	if !strings.HasPrefix(got, "I heard: 'blorp'. I'm not sure what to do with that.") {
		t.Fatalf("got %q", got)
	}
}

func TestYouTubeFirstVideo(t *testing.T) {
	var gotUA, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("search_query")
		_, _ = w.Write([]byte(`<a href="/shorts/x"></a><a href="/watch?v=dQw4w9WgXcQ&list=1">`))
	}))
	defer srv.Close()

	y := NewYouTube(srv.Client())
	y.BaseURL = srv.URL

	u, err := y.FirstVideo(context.Background(), "never gonna")
	if err != nil {
		t.Fatalf("FirstVideo: %v", err)
	}
	if u != srv.URL+"/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("url %q", u)
	}
	if gotQuery != "never gonna" || !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Fatalf("query %q ua %q", gotQuery, gotUA)
	}
}

func TestYouTubeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search_query") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("<html>nothing</html>"))
	}))
	defer srv.Close()

	y := NewYouTube(srv.Client())
	y.BaseURL = srv.URL

	if _, err := y.FirstVideo(context.Background(), "quiet"); !errors.Is(err, ErrNoVideo) {
		t.Fatalf("err=%v, want ErrNoVideo", err)
	}
	if _, err := y.FirstVideo(context.Background(), "broken"); err == nil {
		t.Fatalf("expected error for 500")
	}
}
