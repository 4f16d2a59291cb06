package controller

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/pattarav/supportline/agent/contract"
	nodex "github.com/pattarav/supportline/agent/nodes"
	statex "github.com/pattarav/supportline/agent/state"
	consolex "github.com/pattarav/supportline/pkg/console"
)

type Config struct {
	UserName string
	Premium  bool
}

// Controller owns the session state machine and the console loop. One turn is
// one synchronous invocation of the compiled turn graph; no classifier call
// starts before the prior turn's reply has been printed.
type Controller struct {
	registry contractx.Registry

	state *statex.SessionState
	phase statex.Phase

	in  *bufio.Scanner
	out *consolex.Printer

	turnRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(registry contractx.Registry, input io.Reader, output io.Writer, cfg Config) (*Controller, error) {
	if registry == nil {
		return nil, errors.New("handler registry is required")
	}
	if input == nil || output == nil {
		return nil, errors.New("console input and output are required")
	}

	c := &Controller{
		registry: registry,
		in:       bufio.NewScanner(input),
		out:      consolex.New(output),
		phase:    statex.PhaseAwaitingTriage,
		now:      time.Now,
	}
	c.state = statex.NewSessionState(cfg.UserName, cfg.Premium, c.now())

	turnRunner, err := c.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	c.turnRunner = turnRunner

	return c, nil
}

// State exposes the session for the exit summary and tests.
func (c *Controller) State() *statex.SessionState {
	return c.state
}

func (c *Controller) Phase() statex.Phase {
	return c.phase
}

// HandleTurn runs one turn through the graph and advances the machine.
func (c *Controller) HandleTurn(ctx context.Context, text string) (nodex.GraphOutput, error) {
	out, err := c.turnRunner.Invoke(ctx, nodex.GraphInput{
		Phase:   c.phase,
		Text:    text,
		Session: c.state,
	})
	if err != nil {
		return nodex.GraphOutput{}, err
	}
	c.phase = out.NextPhase
	return out, nil
}

// Run drives the read-classify-respond-handoff loop until the session ends,
// then prints the summary. EOF on input ends the session the same way a quit
// word does, minus the goodbye line.
func (c *Controller) Run(ctx context.Context) error {
	log.Info().
		Str("session_id", c.state.SessionID).
		Str("user", c.state.UserName).
		Bool("premium", c.state.Premium).
		Msg("session started")

	c.out.Welcome()

	for c.phase != statex.PhaseEnded {
		c.out.UserPrompt()
		if !c.in.Scan() {
			break
		}
		text := strings.TrimSpace(c.in.Text())
		if text == "" {
			continue
		}

		out, err := c.HandleTurn(ctx, text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}

		if out.Speaker != "" {
			c.out.Agent(out.Speaker, out.Reply)
		} else {
			c.out.System(out.Reply)
		}
		if out.AskFollowUp {
			c.out.System(nodex.FollowUpPrompt)
		}
	}

	c.out.Summary(c.state)

	log.Info().
		Str("session_id", c.state.SessionID).
		Str("category", string(c.state.Category)).
		Int("queries", c.state.QueryCount()).
		Msg("session ended")

	return c.in.Err()
}
