package viz

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tlinesim/internal/tline"
)

const (
	width    = 80
	height   = 24
	maxSpeed = 16
	fps      = 30
)

type TickMsg time.Time

// Model replays a simulated field as voltage against position, one time
// step per frame.
type Model struct {
	field         *tline.Field
	positions     []float64
	times         []float64
	name          string
	lo, hi        float64
	step          int
	speed         int
	running       bool
	width, height int
	canvas        *Canvas
	recording     bool
	frames        []*image.Paletted
	gifPath       string
	message       string
	showHelp      bool
}

// NewModel prepares a replay of f. positions and times label the axes and
// must match the field's shape.
func NewModel(f *tline.Field, positions, times []float64, name string) Model {
	lo, hi := f.Bounds()
	pad := 0.1 * (hi - lo)
	if pad == 0 {
		pad = 0.5
	}
	return Model{
		field:     f,
		positions: positions,
		times:     times,
		name:      name,
		lo:        lo - pad,
		hi:        hi + pad,
		speed:     1,
		running:   true,
		width:     width,
		height:    height,
		canvas:    NewCanvas(width, height),
		gifPath:   name + ".gif",
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.step = 0
		case "[":
			m.running = false
			m.scrub(-1)
		case "]":
			m.running = false
			m.scrub(1)
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-50, 20)
		m.height = max(msg.Height-4, 8)
		m.canvas = NewCanvas(m.width, m.height)
	case TickMsg:
		if m.running {
			m.scrub(m.speed)
		}
		if m.recording {
			m.draw()
			m.frames = append(m.frames, m.canvas.Image(8, 16))
		}
		return m, tick()
	}
	return m, nil
}

// scrub moves the play head, wrapping at both ends.
func (m *Model) scrub(n int) {
	steps := m.field.Steps()
	m.step = ((m.step+n)%steps + steps) % steps
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		m.message = "recording"
		return
	}
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.message = "gif: " + err.Error()
	} else {
		m.message = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.gifPath)
	}
	m.frames = nil
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeGIF(f, m.frames, 100/fps); err != nil {
		return err
	}
	return f.Close()
}

// EncodeGIF writes frames as a looping animation with delay hundredths of
// a second between frames.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.HLine(0, m.lo, m.hi)
	m.canvas.Plot(m.field.Row(m.step), m.lo, m.hi)
	_, h := m.canvas.Dots()
	m.canvas.DrawLine(0, 0, 0, h-1)
}

func (m Model) Step() int     { return m.step }
func (m Model) Running() bool { return m.running }
func (m Model) Speed() int    { return m.speed }

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	load := m.field.Load()[:m.step+1]
	if len(load) > 1 {
		chart := asciigraph.Plot(load, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Load"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Source") + Sparkline(m.field.Source()[:m.step+1], 30) + "\n\n")

	t := 0.0
	if m.step < len(m.times) {
		t = m.times[m.step]
	}
	row := m.field.Row(m.step)
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d/%d", m.step+1, m.field.Steps())) + "\n")
	s.WriteString(labelStyle.Render("V source") + valueStyle.Render(fmt.Sprintf("%.3f", row[0])) + "\n")
	s.WriteString(labelStyle.Render("V load") + valueStyle.Render(fmt.Sprintf("%.3f", row[len(row)-1])) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("x%d", m.speed)) + "\n")
	s.WriteString(ProgressBar(float64(m.step+1)/float64(m.field.Steps()), 30) + "\n")
	if len(m.positions) > 0 {
		s.WriteString(labelStyle.Render("Length") + valueStyle.Render(fmt.Sprintf("%.2f", m.positions[len(m.positions)-1])) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + valueStyle.Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\n[ ]:Step +-:Speed G:Record ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from t = 0       ║
║  Q        - Quit                     ║
║  [        - Step back                ║
║  ]        - Step forward             ║
║  + / -    - Faster / slower          ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
