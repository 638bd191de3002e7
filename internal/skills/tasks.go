package skills

import (
	"context"
	"fmt"
	log "log/slog"
	"regexp"
	"strconv"
	"strings"

	"maze/internal/nlu"
)

var (
	addTaskPhrases      = []string{"add task", "new task", "create task"}
	completeTaskPhrases = []string{"complete task", "done task", "finish task", "mark task"}
	clearTaskPhrases    = []string{"clear task", "delete task", "remove task", "clear all task", "delete all task"}
	showTaskPhrases     = []string{
		"show task", "my task", "list task", "task list", "all task",
		"show tasks", "my tasks", "list tasks", "pending task",
		"what are my task", "tasks", "show me task", "show me tasks",
		"view task", "view tasks",
	}
	listingWords = []string{"show", "list", "view", "see", "all", "my", "pending"}

	digitsRe = regexp.MustCompile(`\d+`)
)

// Tasks manages the task list. Intents are checked add, complete, clear,
// then show, since the show phrases are broad enough to swallow the others.
func (k *Kit) Tasks(ctx context.Context, cmd string) (string, bool) {
	switch {
	case nlu.ContainsAny(cmd, addTaskPhrases...):
		return k.addTask(cmd), true
	case nlu.ContainsAny(cmd, completeTaskPhrases...):
		return k.completeTask(cmd), true
	case nlu.ContainsAny(cmd, clearTaskPhrases...):
		if err := k.TaskList.Clear(); err != nil {
			log.Warn("Failed to save tasks", "err", err)
		}
		return "All tasks cleared. Fresh start.", true
	case isShowTasks(cmd):
		return k.showTasks(), true
	}
	return "", false
}

func isShowTasks(cmd string) bool {
	if nlu.ContainsAny(cmd, showTaskPhrases...) {
		return true
	}
	if !strings.Contains(cmd, "task") {
		return false
	}
	return strings.Contains(cmd, "show") || nlu.HasWord(cmd, listingWords...)
}

func (k *Kit) addTask(cmd string) string {
	desc := nlu.ExtractAfter(cmd, addTaskPhrases...)
	if desc == "" {
		return "What task do you want to add? Say 'add task' followed by the task name."
	}
	if _, err := k.TaskList.Add(desc); err != nil {
		log.Warn("Failed to save tasks", "err", err)
	}
	return fmt.Sprintf("Task added: %s. You now have %d pending tasks.", desc, len(k.TaskList.Pending()))
}

func (k *Kit) showTasks() string {
	if k.TaskList.Len() == 0 {
		return "You have no tasks yet. Say 'add task' followed by the task name to add one."
	}

	pending := k.TaskList.Pending()
	done := k.TaskList.DoneCount()
	if len(pending) == 0 {
		return fmt.Sprintf("All tasks completed! You've finished %d tasks. Great work!", done)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d pending tasks.", len(pending))
	for i, t := range pending {
		fmt.Fprintf(&b, " Task %d: %s.", i+1, t.Description)
	}
	if done > 0 {
		fmt.Fprintf(&b, " And %d completed.", done)
	}
	return b.String()
}

// completeTask takes the first number in cmd as a position in the current
// pending list. Positions shift after every completion.
func (k *Kit) completeTask(cmd string) string {
	const prompt = "Which task? Say 'complete task 1', 'complete task 2', etc."

	m := digitsRe.FindString(cmd)
	if m == "" {
		return prompt
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return prompt
	}

	t, ok, err := k.TaskList.Complete(n)
	if err != nil {
		log.Warn("Failed to save tasks", "err", err)
	}
	if !ok {
		return prompt
	}
	return fmt.Sprintf("Nice! Task '%s' is done. Keep going!", t.Description)
}
