package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

type fakeAssistant struct {
	got     []string
	forgot  bool
	summary string
}

func (f *fakeAssistant) Respond(_ context.Context, cmd string) string {
	f.got = append(f.got, cmd)
	return "reply to " + cmd
}

func (f *fakeAssistant) MemorySummary(context.Context) string { return f.summary }

func (f *fakeAssistant) Forget(context.Context) { f.forgot = true }

func run(t *testing.T, input string, a *fakeAssistant) string {
	t.Helper()

	var out bytes.Buffer
	c := New(NewBasicInput(strings.NewReader(input), nil), &out, a)
	c.now = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local) }
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestRunAnswersUntilExitWord(t *testing.T) {
	a := &fakeAssistant{}
	out := run(t, "open notepad\n\n  tell me a joke  \nok bye now\nnever read\n", a)

	if len(a.got) != 2 || a.got[0] != "open notepad" || a.got[1] != "tell me a joke" {
		t.Fatalf("commands %q", a.got)
	}
	for _, want := range []string{
		"Good morning. MAZE online. All systems ready.",
		"reply to open notepad",
		farewell,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunStopsOnEOF(t *testing.T) {
	a := &fakeAssistant{}
	out := run(t, "hello", a)

	if len(a.got) != 1 || a.got[0] != "hello" {
		t.Fatalf("commands %q", a.got)
	}
	if !strings.Contains(out, interrupted) {
		t.Fatalf("output %s", out)
	}
}

func TestSlashCommands(t *testing.T) {
	a := &fakeAssistant{summary: "I have 4 messages in memory from this session."}
	out := run(t, "/memory\n/forget\n/nope\n", a)

	if len(a.got) != 0 {
		t.Fatalf("slash commands reached the assistant: %q", a.got)
	}
	if !a.forgot {
		t.Fatalf("/forget ignored")
	}
	for _, want := range []string{a.summary, memoryForgot, "Unknown command /nope"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDayPart(t *testing.T) {
	cases := map[int]string{0: "Good morning", 13: "Good afternoon", 18: "Good evening", 22: "Good night"}
	for h, want := range cases {
		if got := dayPart(h); got != want {
			t.Fatalf("dayPart(%d)=%q", h, got)
		}
	}
}
