package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TaskStatus represents the status of a task
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskDone
	TaskFailed
	TaskSkipped
)

// Task is one stage of a Workflow.
type Task struct {
	Name    string
	Status  TaskStatus
	Message string
	Details string // shown after the name once done
}

// Workflow renders a list of stages with an inline spinner. When animate is
// false only the final state is printed by Stop.
type Workflow struct {
	writer  io.Writer
	animate bool

	mu         sync.Mutex
	tasks      []*Task
	spinnerIdx int
	lastRender string
	running    bool
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewWorkflow creates a new workflow tracker
func NewWorkflow(w io.Writer, animate bool) *Workflow {
	return &Workflow{
		writer:   w,
		animate:  animate,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// AddTask appends a pending task and returns its index.
func (wf *Workflow) AddTask(name string) int {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	wf.tasks = append(wf.tasks, &Task{Name: name, Status: TaskPending})
	return len(wf.tasks) - 1
}

func (wf *Workflow) set(idx int, fn func(*Task)) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if idx >= 0 && idx < len(wf.tasks) {
		fn(wf.tasks[idx])
	}
}

// StartTask marks a task as running
func (wf *Workflow) StartTask(idx int, message string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskRunning, message })
}

// CompleteTask marks a task as done
func (wf *Workflow) CompleteTask(idx int, details string) {
	wf.set(idx, func(t *Task) { t.Status, t.Details = TaskDone, details })
}

// FailTask marks a task as failed
func (wf *Workflow) FailTask(idx int, errMsg string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskFailed, errMsg })
}

// SkipTask marks a task as skipped
func (wf *Workflow) SkipTask(idx int, reason string) {
	wf.set(idx, func(t *Task) { t.Status, t.Message = TaskSkipped, reason })
}

// Tasks returns a snapshot of the current task states.
func (wf *Workflow) Tasks() []Task {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	out := make([]Task, len(wf.tasks))
	for i, t := range wf.tasks {
		out[i] = *t
	}
	return out
}

// Start begins the spinner animation.
func (wf *Workflow) Start() {
	wf.mu.Lock()
	if wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = true
	wf.mu.Unlock()

	if !wf.animate {
		close(wf.doneChan)
		return
	}

	go func() {
		defer close(wf.doneChan)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-wf.stopChan:
				return
			case <-ticker.C:
				wf.mu.Lock()
				wf.spinnerIdx = (wf.spinnerIdx + 1) % len(spinnerFrames)
				wf.mu.Unlock()
				wf.render(false)
			}
		}
	}()
}

// Stop ends the animation and prints the final state.
func (wf *Workflow) Stop() {
	wf.mu.Lock()
	if !wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = false
	wf.mu.Unlock()

	close(wf.stopChan)
	<-wf.doneChan
	wf.render(true)
}

func (wf *Workflow) render(final bool) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	var b strings.Builder
	if wf.lastRender != "" {
		lineCount := strings.Count(wf.lastRender, "\n") + 1
		for i := 0; i < lineCount; i++ {
			b.WriteString("\033[A\033[K")
		}
	}

	for _, task := range wf.tasks {
		if final {
			b.WriteString(renderTaskFinal(task))
		} else {
			b.WriteString(wf.renderTask(task))
		}
		b.WriteString("\n")
	}

	output := b.String()
	if !final {
		wf.lastRender = strings.TrimSuffix(output, "\n")
	}
	fmt.Fprint(wf.writer, output)
}

func (wf *Workflow) renderTask(task *Task) string {
	var icon string
	nameStyle, msgStyle := StepPending, Dim

	switch task.Status {
	case TaskPending:
		icon = Muted.Render("○")
	case TaskRunning:
		icon = Secondary.Render(spinnerFrames[wf.spinnerIdx])
		nameStyle, msgStyle = StepRunning, Secondary
	case TaskDone:
		icon = GetCheckMark()
		nameStyle = StepComplete
	case TaskFailed:
		icon = GetCrossMark()
		nameStyle, msgStyle = StepFailed, Error
	case TaskSkipped:
		icon = Warning.Render("⊘")
		nameStyle, msgStyle = StepSkipped, Warning
	}

	line := icon + " " + nameStyle.Render(task.Name)
	if task.Message != "" {
		line += " " + msgStyle.Render(task.Message)
	}
	return line
}

func renderTaskFinal(task *Task) string {
	var icon string
	nameStyle := StepPending

	switch task.Status {
	case TaskPending, TaskRunning:
		icon = Muted.Render("○")
	case TaskDone:
		icon = GetCheckMark()
		nameStyle = StepComplete
	case TaskFailed:
		icon = GetCrossMark()
		nameStyle = StepFailed
	case TaskSkipped:
		icon = Warning.Render("⊘")
		nameStyle = StepSkipped
	}

	line := icon + " " + nameStyle.Render(task.Name)
	switch {
	case task.Status == TaskDone && task.Details != "":
		line += " " + Dim.Render("→ "+task.Details)
	case task.Status == TaskFailed && task.Message != "":
		line += " " + Error.Render("→ "+task.Message)
	case task.Status == TaskSkipped && task.Message != "":
		line += " " + Warning.Render("→ "+task.Message)
	}
	return line
}
