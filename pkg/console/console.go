package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	statex "github.com/pattarav/supportline/agent/state"
)

var (
	systemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

// Printer renders the line-oriented conversation. It writes to any io.Writer
// so tests can capture the exact turn sequence.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) System(msg string) {
	fmt.Fprintln(p.w, systemStyle.Render(msg))
}

func (p *Printer) Agent(speaker, msg string) {
	fmt.Fprintf(p.w, "%s %s\n", speakerStyle.Render(speaker+":"), msg)
}

// UserPrompt prints the input prompt without a trailing newline.
func (p *Printer) UserPrompt() {
	fmt.Fprint(p.w, userStyle.Render("You:")+" ")
}

func (p *Printer) Welcome() {
	p.System("Welcome to the Support Agent System!")
	p.System("Type 'quit' to exit at any time.")
	p.System("Please describe your issue and we'll assist you.")
	fmt.Fprintln(p.w)
}

// Summary prints the end-of-session report.
func (p *Printer) Summary(st *statex.SessionState) {
	premium := "No"
	if st != nil && st.Premium {
		premium = "Yes"
	}
	name := "Guest"
	category := "unset"
	count := 0
	if st != nil {
		name = st.UserName
		if st.Category != statex.CategoryUnset {
			category = string(st.Category)
		}
		count = st.QueryCount()
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, summaryStyle.Render("Session Summary:"))
	fmt.Fprintf(p.w, "   User: %s\n", name)
	fmt.Fprintf(p.w, "   Premium: %s\n", premium)
	fmt.Fprintf(p.w, "   Issue Type: %s\n", category)
	fmt.Fprintf(p.w, "   Queries Handled: %d\n", count)
}
