package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StepStatus represents the status of a step
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusRunning
	StatusComplete
	StatusFailed
	StatusSkipped
)

// Step is one row of a checklist.
type Step struct {
	Name    string
	Status  StepStatus
	Message string
}

// ProgressModel is the Bubble Tea model behind ProgressTracker.
type ProgressModel struct {
	spinner  spinner.Model
	steps    []Step
	title    string
	done     bool
	err      error
	quitting bool
}

// ProgressOption configures a ProgressModel.
type ProgressOption func(*ProgressModel)

// WithTitle sets the heading printed above the steps.
func WithTitle(title string) ProgressOption {
	return func(m *ProgressModel) {
		m.title = title
	}
}

// WithSteps initializes the checklist rows.
func WithSteps(steps []string) ProgressOption {
	return func(m *ProgressModel) {
		m.steps = make([]Step, len(steps))
		for i, name := range steps {
			m.steps[i] = Step{Name: name, Status: StatusPending}
		}
	}
}

// NewProgressModel creates a new progress model
func NewProgressModel(opts ...ProgressOption) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	m := ProgressModel{spinner: s}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// ProgressMsg updates a single step.
type ProgressMsg struct {
	StepIndex int
	Status    StepStatus
	Message   string
}

// DoneMsg signals that all steps have finished.
type DoneMsg struct {
	Err error
}

// Update handles messages
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.StepIndex >= 0 && msg.StepIndex < len(m.steps) {
			m.steps[msg.StepIndex].Status = msg.Status
			m.steps[msg.StepIndex].Message = msg.Message
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the checklist.
func (m ProgressModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render(m.spinner.View()))
}

func (m ProgressModel) render(runningIcon string) string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(Title.Render(m.title))
		b.WriteString("\n\n")
	}

	for i, step := range m.steps {
		b.WriteString(renderStep(step, runningIcon))
		if i < len(m.steps)-1 {
			b.WriteString("\n")
		}
	}

	if m.done {
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(ErrorBox.Render(GetCrossMark() + " " + m.err.Error()))
		} else {
			completed := 0
			for _, s := range m.steps {
				if s.Status == StatusComplete {
					completed++
				}
			}
			b.WriteString(Success.Render(fmt.Sprintf("✓ %d/%d checks passed", completed, len(m.steps))))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderStep(step Step, runningIcon string) string {
	var icon string
	var st style

	switch step.Status {
	case StatusPending:
		icon = Muted.Render("○")
		st = StepPending
	case StatusRunning:
		icon = runningIcon
		st = StepRunning
	case StatusComplete:
		icon = GetCheckMark()
		st = StepComplete
	case StatusFailed:
		icon = GetCrossMark()
		st = StepFailed
	case StatusSkipped:
		icon = Warning.Render("⊘")
		st = StepSkipped
	}

	line := icon + " " + st.Render(step.Name)
	if step.Message != "" && step.Status != StatusPending && step.Status != StatusRunning {
		line += Dim.Render(" → " + step.Message)
	}
	return line
}

// ProgressTracker drives a ProgressModel from ordinary code. With
// interactive=false it prints the final checklist once instead of animating.
type ProgressTracker struct {
	out         io.Writer
	interactive bool
	model       ProgressModel

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewProgressTracker creates a tracker writing to w.
func NewProgressTracker(w io.Writer, title string, steps []string, interactive bool) *ProgressTracker {
	return &ProgressTracker{
		out:         w,
		interactive: interactive,
		model:       NewProgressModel(WithTitle(title), WithSteps(steps)),
	}
}

// Start begins the animated display when interactive.
func (pt *ProgressTracker) Start() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !pt.interactive || pt.program != nil {
		return
	}
	pt.program = tea.NewProgram(pt.model, tea.WithOutput(pt.out), tea.WithInput(nil), tea.WithoutSignalHandler())
	pt.done = make(chan struct{})
	go func() {
		defer close(pt.done)
		_, _ = pt.program.Run()
	}()
}

// UpdateStep sets the status of step index.
func (pt *ProgressTracker) UpdateStep(index int, status StepStatus, message string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	msg := ProgressMsg{StepIndex: index, Status: status, Message: message}
	if pt.program != nil {
		pt.program.Send(msg)
		return
	}
	m, _ := pt.model.Update(msg)
	pt.model = m.(ProgressModel)
}

// Complete finishes the display and waits for the final frame.
func (pt *ProgressTracker) Complete(err error) {
	pt.mu.Lock()
	program, done := pt.program, pt.done
	pt.mu.Unlock()

	if program != nil {
		program.Send(DoneMsg{Err: err})
		<-done
		return
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()
	m, _ := pt.model.Update(DoneMsg{Err: err})
	pt.model = m.(ProgressModel)
	fmt.Fprint(pt.out, pt.model.render(StepRunning.Render("…")))
}
