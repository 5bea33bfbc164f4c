package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/pipeline"
	"github.com/matzehuels/gridviz/pkg/plan"
	"github.com/matzehuels/gridviz/pkg/render/sink"
	"github.com/matzehuels/gridviz/pkg/render/snapshot"
)

// playCommand creates the interactive terminal playback command.
func (c *CLI) playCommand() *cobra.Command {
	var delayMS int

	cmd := &cobra.Command{
		Use:   "play <map-file> <plan-file>",
		Short: "Step through a plan interactively in the terminal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grid.Load(args[0])
			if err != nil {
				return err
			}
			p, err := plan.ImportFile(args[1])
			if err != nil {
				return err
			}
			if err := p.Validate(g); err != nil {
				return err
			}

			model := newPlayModel(g, p, time.Duration(delayMS)*time.Millisecond)
			prog := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&delayMS, "delay", pipeline.DefaultDelayMS, "autoplay frame duration in milliseconds")

	return cmd
}

// tickMsg advances autoplay by one timestep.
type tickMsg time.Time

// playModel is the bubbletea model for stepping through a plan.
type playModel struct {
	grid  *grid.Grid
	plan  *plan.Plan
	step  int  // current timestep, in [0, steps]; steps == terminal view
	auto  bool // autoplay running
	delay time.Duration
	err   error
}

func newPlayModel(g *grid.Grid, p *plan.Plan, delay time.Duration) playModel {
	return playModel{grid: g, plan: p, delay: delay}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.auto = false
			if m.step < m.plan.Steps() {
				m.step++
			}
		case "left", "h":
			m.auto = false
			if m.step > 0 {
				m.step--
			}
		case "home", "g":
			m.auto = false
			m.step = 0
		case "end", "G":
			m.auto = false
			m.step = m.plan.Steps()
		case " ":
			m.auto = !m.auto
			if m.auto {
				return m, m.tick()
			}
		}
	case tickMsg:
		if !m.auto {
			return m, nil
		}
		if m.step < m.plan.Steps() {
			m.step++
			return m, m.tick()
		}
		m.auto = false
	}
	return m, nil
}

// snapshotAt builds the state for the current timestep. The step just
// past the end of the path shows the terminal state.
func (m playModel) snapshotAt() (*snapshot.Snapshot, error) {
	if m.step >= m.plan.Steps() {
		var agent *grid.Position
		if last, ok := m.plan.Path.Last(); ok {
			agent = &last
		}
		return snapshot.Build(m.grid, agent, m.plan.FinalBoxes())
	}
	agent := m.plan.Path[m.step]
	return snapshot.Build(m.grid, &agent, m.plan.BoxesAt(m.step))
}

func (m playModel) View() string {
	snap, err := m.snapshotAt()
	if err != nil {
		return StyleWarning.Render(err.Error()) + "\n"
	}

	label := fmt.Sprintf("step %d/%d", m.step, m.plan.Steps())
	if m.step >= m.plan.Steps() {
		label = "terminal state"
	}
	mode := "paused"
	if m.auto {
		mode = "playing"
	}

	out := StyleTitle.Render("gridviz") + "  " + StyleDim.Render(label+" · "+mode) + "\n\n"
	out += sink.RenderASCII(snap)
	out += "\n" + StyleDim.Render("←/→ step  space play/pause  g/G first/last  q quit") + "\n"
	return out
}
