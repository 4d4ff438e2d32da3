package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/ofey404/gas-properties/internal/gas"
	"github.com/ofey404/gas-properties/internal/sim"
)

const (
	width           = 72
	height          = 22
	historyCapacity = 600
	widthStep       = 500 // pm per resize keypress
	countStep       = 10  // particles per count keypress
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives an interactive simulation session in the terminal.
type Model struct {
	sim      *sim.Simulation
	scenario string
	dt       float64

	canvas  *Canvas
	running bool

	pressure    *slidingPressure
	pressHist   []float64
	tempHist    []float64
	lastErr     error
	lastTickErr error
	showHelp    bool
}

// slidingPressure smooths the wall-impulse pressure estimate over a
// fixed window of ticks.
type slidingPressure struct {
	samples []float64
	window  int
}

func (p *slidingPressure) observe(v float64) {
	p.samples = append(p.samples, v)
	if len(p.samples) > p.window {
		p.samples = p.samples[len(p.samples)-p.window:]
	}
}

func (p *slidingPressure) value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.samples {
		sum += v
	}
	return sum / float64(len(p.samples))
}

// NewModel wraps a simulation for live viewing. dt is the fixed tick
// length in picoseconds.
func NewModel(s *sim.Simulation, scenario string, dt float64) Model {
	return Model{
		sim:      s,
		scenario: scenario,
		dt:       dt,
		canvas:   NewCanvas(width, height),
		running:  true,
		pressure: &slidingPressure{window: 60},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.lastErr = nil
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.lastErr = m.sim.ReinitializePopulations()
		case "h":
			m.lastErr = m.sim.HeatCool(1.1)
		case "c":
			m.lastErr = m.sim.HeatCool(0.9)
		case "<", ",":
			m.lastErr = m.sim.Resize(m.sim.Container.Width() - widthStep)
		case ">", ".":
			m.lastErr = m.sim.Resize(m.sim.Container.Width() + widthStep)
		case "+", "=":
			m.lastErr = m.sim.SetParticleCount(0, m.sim.Systems()[0].Len()+countStep)
		case "-", "_":
			m.lastErr = m.sim.SetParticleCount(0, m.sim.Systems()[0].Len()-countStep)
		case "p":
			d := m.sim.Detector()
			d.ParticleParticleCollisionsEnabled = !d.ParticleParticleCollisionsEnabled
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.sim.Step(m.dt); err != nil {
		m.lastTickErr = err
		m.running = false
		return
	}

	c := m.sim.Container
	m.pressure.observe(m.sim.Detector().WallImpulse() / (m.dt * c.InsideSurfaceArea()))

	m.pressHist = append(m.pressHist, m.pressure.value())
	if len(m.pressHist) > historyCapacity {
		m.pressHist = m.pressHist[1:]
	}
	m.tempHist = append(m.tempHist, m.sim.Temperature())
	if len(m.tempHist) > historyCapacity {
		m.tempHist = m.tempHist[1:]
	}
}

// toCanvas maps world coordinates to canvas sub-pixels. The vertical axis
// flips: world y grows upward, canvas y grows downward.
func (m *Model) toCanvas(world gas.Bounds2, x, y float64) (int, int) {
	px := (x - world.MinX) / world.Width() * float64(width*2-1)
	py := (world.MaxY - y) / world.Height() * float64(height*4-1)
	return int(px), int(py)
}

func (m *Model) draw() {
	m.canvas.Clear()

	c := m.sim.Container
	world := c.MaxBounds()
	inner := c.Bounds()

	x0, y0 := m.toCanvas(world, inner.MinX, inner.MaxY)
	x1, y1 := m.toCanvas(world, inner.MaxX, inner.MinY)

	// Floor, fixed right wall, movable left wall.
	m.canvas.DrawLine(x0, y1, x1, y1)
	m.canvas.DrawLine(x1, y0, x1, y1)
	m.canvas.DrawLine(x0, y0, x0, y1)

	// Lid, leaving a gap where the opening is.
	if c.IsLidOpen() {
		opening := c.OpeningBounds()
		gx0, _ := m.toCanvas(world, opening.MinX, inner.MaxY)
		gx1, _ := m.toCanvas(world, opening.MaxX, inner.MaxY)
		if gx0 > x0 {
			m.canvas.DrawLine(x0, y0, gx0-1, y0)
		}
		if gx1 < x1 {
			m.canvas.DrawLine(gx1+1, y0, x1, y0)
		}
	} else {
		m.canvas.DrawLine(x0, y0, x1, y0)
	}

	if c.HasDivider() {
		dx, dy0 := m.toCanvas(world, c.DividerX(), inner.MaxY)
		_, dy1 := m.toCanvas(world, c.DividerX(), inner.MinY)
		m.canvas.DrawLine(dx, dy0, dx, dy1)
	}

	for _, obstacle := range c.Obstacles() {
		ox0, oy0 := m.toCanvas(world, obstacle.MinX, obstacle.MaxY)
		ox1, oy1 := m.toCanvas(world, obstacle.MaxX, obstacle.MinY)
		m.canvas.FillRect(ox0, oy0, ox1, oy1)
	}

	for _, p := range m.sim.AllParticles() {
		px, py := m.toCanvas(world, p.Position.X, p.Position.Y)
		m.canvas.Set(px, py)
	}
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")
	s.WriteString(canvasStyle.Render(m.canvas.String()))
	s.WriteString("\n")

	total := 0
	for _, sys := range m.sim.Systems() {
		total += sys.Len()
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f ps", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", total)) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.1f K", m.sim.Temperature())) + "\n")
	s.WriteString(labelStyle.Render("Pressure") + valueStyle.Render(fmt.Sprintf("%.3g", m.pressure.value())) + "\n")
	s.WriteString(labelStyle.Render("Width") + valueStyle.Render(fmt.Sprintf("%.0f pm", m.sim.Container.Width())) + "\n")
	s.WriteString(labelStyle.Render("Wall hits") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Detector().ParticleContainerCollisions())) + "\n")
	if escaped := m.sim.Escaped().Len(); escaped > 0 {
		s.WriteString(labelStyle.Render("Escaped") + valueStyle.Render(fmt.Sprintf("%d", escaped)) + "\n")
	}

	if len(m.pressHist) > 1 {
		chart := asciigraph.Plot(m.pressHist, asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("Pressure"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.tempHist) > 1 {
		chart := asciigraph.Plot(m.tempHist, asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("Temperature"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.lastTickErr != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("tick failed: %v", m.lastTickErr)) + "\n")
	} else if m.lastErr != nil {
		s.WriteString(errorStyle.Render(m.lastErr.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(helpText()))
	} else {
		s.WriteString(helpStyle.Render("space pause  h/c heat/cool  </> resize  +/- particles  p toggle collisions  ? help  q quit"))
	}
	return s.String()
}

func helpText() string {
	return strings.Join([]string{
		"space  pause / resume",
		"r      redistribute particles (divided container)",
		"h / c  scale velocities up / down 10%",
		"< / >  move the left wall in / out",
		"+ / -  add / remove particles of the first species",
		"p      toggle particle-particle collisions",
		"?      toggle this help",
		"q      quit",
	}, "\n")
}

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulation, scenario string, dt float64) error {
	p := tea.NewProgram(NewModel(s, scenario, dt))
	_, err := p.Run()
	return err
}
