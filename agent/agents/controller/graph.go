package controller

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/pattarav/supportline/agent/nodes"
)

func (c *Controller) compileTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_turn",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_turn: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.RouteTriage,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.TriageTurn(ctx, in, c.registry.Triage())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.RouteTriage, err)
	}

	if err := graph.AddLambdaNode(nodex.RouteSpecialist,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.RunSpecialist(ctx, in, c.registry)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.RouteSpecialist, err)
	}

	if err := graph.AddLambdaNode(nodex.RouteContinue,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ContinueTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.RouteContinue, err)
	}

	if err := graph.AddLambdaNode(nodex.RouteEnd,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.EndTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.RouteEnd, err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", nodex.ErrNilSession
			}
			return in.Route, nil
		},
		map[string]bool{
			nodex.RouteTriage:     true,
			nodex.RouteSpecialist: true,
			nodex.RouteContinue:   true,
			nodex.RouteEnd:        true,
		},
	)

	if err := graph.AddEdge(compose.START, "validate_turn"); err != nil {
		return nil, fmt.Errorf("add edge start->validate_turn: %w", err)
	}
	if err := graph.AddBranch("validate_turn", branch); err != nil {
		return nil, fmt.Errorf("add turn branch: %w", err)
	}
	for _, node := range []string{nodex.RouteTriage, nodex.RouteSpecialist, nodex.RouteContinue, nodex.RouteEnd} {
		if err := graph.AddEdge(node, "finalize_reply"); err != nil {
			return nil, fmt.Errorf("add edge %s->finalize_reply: %w", node, err)
		}
	}
	if err := graph.AddEdge("finalize_reply", compose.END); err != nil {
		return nil, fmt.Errorf("add edge finalize_reply->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("controller.turn"))
	if err != nil {
		return nil, fmt.Errorf("compile turn graph: %w", err)
	}
	return runner, nil
}
