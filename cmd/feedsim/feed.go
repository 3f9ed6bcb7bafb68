package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feedlab/adslot/creative/stub"
	"github.com/feedlab/adslot/resource"
	"github.com/feedlab/adslot/slot"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	adStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// adCell pairs a controller with its per-creative impression count.
type adCell struct {
	ctrl        *slot.Controller
	impressions int
}

type feedModel struct {
	ledger *resource.Ledger
	slots  map[int]*adCell
	spin   spinner.Model

	rows   int
	every  int
	window int
	top    int
	page   int
}

func newFeedModel(ledger *resource.Ledger, rows, every, window int) *feedModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &feedModel{
		ledger: ledger,
		slots:  make(map[int]*adCell),
		spin:   sp,
		rows:   rows,
		every:  every,
		window: window,
	}
}

func (m *feedModel) Init() tea.Cmd {
	m.syncSlots()
	return m.spin.Tick
}

func (m *feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			for _, cell := range m.slots {
				cell.ctrl.Teardown()
			}
			return m, tea.Quit
		case "up", "k":
			if m.top > 0 {
				m.top--
				m.syncSlots()
			}
		case "down", "j":
			if m.top+m.window < m.rows {
				m.top++
				m.syncSlots()
			}
		case "r":
			// New feed page: every mounted slot keeps its position but
			// serves a different logical item, i.e. an identity change.
			m.page++
			m.syncSlots()
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.signalViewability()
		return m, cmd
	}
	return m, nil
}

func (m *feedModel) isAdRow(i int) bool {
	return m.every > 0 && i%m.every == m.every-1
}

func (m *feedModel) identity(pos int) slot.Identity {
	return slot.Identity{
		Position:    pos,
		ResourceKey: fmt.Sprintf("page-%d/item-%d", m.page, pos),
	}
}

// syncSlots reconciles controllers with the visible window, the way a
// virtualized list recycles rows.
func (m *feedModel) syncSlots() {
	visible := make(map[int]bool)
	for i := m.top; i < m.top+m.window && i < m.rows; i++ {
		if !m.isAdRow(i) {
			continue
		}
		visible[i] = true

		cell, ok := m.slots[i]
		if !ok {
			ctrl := slot.New(m.ledger)
			cell = &adCell{ctrl: ctrl}
			ctrl.RegisterImpressionObserver(func() {
				cell.impressions++
			})
			m.slots[i] = cell
		}
		cell.ctrl.Mount(m.identity(i))
	}

	// A torn-down controller stays destroyed, so rows that scroll back in
	// get a fresh one.
	for pos, cell := range m.slots {
		if !visible[pos] {
			cell.ctrl.Teardown()
			delete(m.slots, pos)
		}
	}
}

// signalViewability raises the creative's impression signal for every ready,
// on-screen ad. The relay makes delivery at-most-once per creative no matter
// how often this runs.
func (m *feedModel) signalViewability() {
	for _, cell := range m.slots {
		s := cell.ctrl.State()
		if s.Phase == slot.PhaseReady {
			s.Creative.SignalImpression()
		}
	}
}

func (m *feedModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("feedsim"))
	b.WriteString("  ↑/↓ scroll · r refresh page · q quit\n\n")

	for i := m.top; i < m.top+m.window && i < m.rows; i++ {
		if m.isAdRow(i) {
			b.WriteString(m.renderAdRow(i))
		} else {
			b.WriteString(contentStyle.Render(fmt.Sprintf("  %3d  post from @user%d", i, i*31%97)))
		}
		b.WriteByte('\n')
	}

	constructed, disposed := m.ledger.Counts()
	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"\nledger: %d live · %d constructed · %d disposed",
		m.ledger.Live(), constructed, disposed,
	)))
	return b.String()
}

func (m *feedModel) renderAdRow(i int) string {
	cell, ok := m.slots[i]
	if !ok {
		return hiddenStyle.Render(fmt.Sprintf("  %3d  ·", i))
	}

	s := cell.ctrl.State()
	switch s.Phase {
	case slot.PhaseProbing, slot.PhaseLoading:
		return loadingStyle.Render(fmt.Sprintf("  %3d  %s loading ad…", i, m.spin.View()))
	case slot.PhaseReady:
		ad, _ := s.Creative.Body().(stub.NativeAd)
		return adStyle.Render(fmt.Sprintf(
			"  %3d  ▶ %s — %s [%s] (impressions: %d)",
			i, ad.Headline, ad.Advertiser, ad.CallToAction, cell.impressions,
		))
	case slot.PhaseUnsupported:
		return hiddenStyle.Render(fmt.Sprintf("  %3d  (ad slot hidden: unsupported)", i))
	case slot.PhaseFailed:
		return hiddenStyle.Render(fmt.Sprintf("  %3d  (ad slot hidden: %s)", i, s.Reason))
	default:
		return hiddenStyle.Render(fmt.Sprintf("  %3d  ·", i))
	}
}
