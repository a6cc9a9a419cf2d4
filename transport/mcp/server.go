package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gridgames/chainreaction/game/engine"
	"github.com/gridgames/chainreaction/game/service"
)

// Server exposes the game service as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server over the game service
func NewServer(gameService service.GameService) *Server {
	s := &Server{
		service: gameService,
	}

	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Chain Reaction Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Chain Reaction - MCP Interface

A two-player territory game on a 5x5 grid. Players take turns placing one
unit on an empty cell or a cell they already own. When a cell reaches its
capacity (the number of orthogonal neighbors: 2 in a corner, 3 on an edge,
4 in the interior) it explodes, sending one unit to each neighbor and
converting those cells to the mover. Chains cascade. A player wins by
eliminating every enemy unit after both sides have moved.

AVAILABLE TOOLS:
- create_match: start a match (two_player or versus_computer)
- match_state: see the board, whose turn it is, and the scores
- place: put a unit on a cell as player_a or player_b
- computer_move: in versus_computer matches, ask the automated side to reply
- reset_match: clear the board and start over
- scores: live unit totals and winner once the game ends
- move_history: review past moves
- list_matches: list active matches
- game_rules: the full rules text

Board cells render as A3 (owner + unit count) or "." when empty.`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Match management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new Chain Reaction match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"two_player", "versus_computer"},
					"description": "Match mode (default: two_player)",
				},
			},
		},
	}, s.handleCreateMatch)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all active matches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListMatches)

	// Game operations
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "match_state",
		Description: "Get the current board, turn, and scores for a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, s.handleMatchState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "place",
		Description: "Place a unit on a cell. The cell must be empty or already owned by the placing player.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-4)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-4)",
				},
				"player": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"player_a", "player_b"},
					"description": "Which player is placing",
				},
			},
			Required: []string{"match_id", "row", "col", "player"},
		},
	}, s.handlePlace)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "computer_move",
		Description: "Ask the automated opponent to play its reply (versus_computer matches only)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, s.handleComputerMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_match",
		Description: "Reset a match to an empty board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "scores",
		Description: "Get live unit totals and terminal status for a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, s.handleScores)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the move history for a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"match_id"},
		},
	}, s.handleMoveHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the full Chain Reaction rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// HandleMessage processes a raw JSON-RPC message, for mounting on an HTTP endpoint
func (s *Server) HandleMessage(ctx context.Context, message []byte) interface{} {
	return s.mcpServer.HandleMessage(ctx, message)
}

// Tool handlers

func (s *Server) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	modeStr, _ := args["mode"].(string)

	mode := service.Mode(modeStr)
	if modeStr == "" {
		mode = service.ModeTwoPlayer
	}

	info, err := s.service.CreateMatch(ctx, mode)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nMode: %s\n", info.ID, info.Mode)
	if info.ComputerSide != engine.None {
		result += fmt.Sprintf("Computer plays: %s\n", info.ComputerSide)
	}
	result += "\n" + formatGameState(&info.GameState)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	matches, err := s.service.ListMatches(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Matches (%d):\n\n", len(matches))
	for _, m := range matches {
		status := fmt.Sprintf("turn=%s moves=%d", m.GameState.CurrentTurn, m.GameState.MoveCount)
		if m.GameState.Terminated {
			status = fmt.Sprintf("finished, winner=%s", m.GameState.Winner)
		}
		fmt.Fprintf(&result, "- %s (%s, %s, created %s)\n",
			m.ID, m.Mode, status, m.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	state, err := s.service.GetGameState(ctx, matchID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	row, _ := args["row"].(float64)
	col, _ := args["col"].(float64)
	player, _ := args["player"].(string)

	result, err := s.service.Move(ctx, matchID, int(row), int(col), engine.Owner(player))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleComputerMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	result, err := s.service.ComputerMove(ctx, matchID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	state, err := s.service.Reset(ctx, matchID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Match reset.\n\n"+formatGameState(state)), nil
}

func (s *Server) handleScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	report, err := s.service.GetScores(ctx, matchID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("player_a: %d units\nplayer_b: %d units\nMoves played: %d\n",
		report.Scores.PlayerA, report.Scores.PlayerB, report.MoveCount)
	if report.Terminated {
		result += fmt.Sprintf("Game over. Winner: %s\n", report.Winner)
	} else {
		result += "Game in progress.\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	opts := service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}
	if page, ok := args["page"].(float64); ok && page > 0 {
		opts.Page = int(page)
	}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		opts.Limit = int(limit)
	}

	history, err := s.service.GetMoveHistory(ctx, matchID, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Move History (page %d of %d, %d total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, mv := range history.Moves {
		line := fmt.Sprintf("#%d %s -> (%d,%d)", mv.MoveNumber, mv.Player, mv.Position.Row, mv.Position.Col)
		if mv.Outcome.Explosions > 0 {
			line += fmt.Sprintf(" [%d explosions over %d rounds, %d units captured]",
				mv.Outcome.Explosions, mv.Outcome.Rounds, mv.Outcome.CapturedUnits)
		}
		result.WriteString(line + "\n")
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameRules), nil
}

const gameRules = `CHAIN REACTION - RULES

BOARD
A 5x5 grid. Each cell has a capacity equal to its number of orthogonal
neighbors: corners 2, edges 3, interior 4.

TURNS
player_a moves first. On your turn, place one unit on an empty cell or a
cell you already own. You cannot place on an opponent's cell.

EXPLOSIONS
When a cell's unit count reaches its capacity, it explodes: the cell is
emptied and one unit is sent to each orthogonal neighbor. Every cell
receiving a unit is converted to the mover, whoever owned it before.
Explosions triggered by those arrivals cascade in simultaneous rounds
until the board settles.

WINNING
Once both sides have played at least one move, a player wins the moment
the opponent has zero units on the board. There are no draws in normal
play.

STRATEGY HINTS
- Corners and edges explode earliest; interior cells hold the most.
- A cell one unit short of capacity is primed; loading next to an
  opponent's primed cell is dangerous.
- Cascades convert territory fast. A single placement can flip the game.`

// Board rendering

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Turn: %s | Moves: %d | a=%d b=%d\n",
		state.CurrentTurn, state.MoveCount, state.Scores.PlayerA, state.Scores.PlayerB)
	if state.Terminated {
		fmt.Fprintf(&result, "GAME OVER. Winner: %s\n", state.Winner)
	}
	result.WriteString("\n")

	result.WriteString("     0   1   2   3   4\n")
	for row := 0; row < engine.BoardSize; row++ {
		fmt.Fprintf(&result, "%d  ", row)
		for col := 0; col < engine.BoardSize; col++ {
			cell := state.Board[row][col]
			switch cell.Owner {
			case engine.PlayerA:
				fmt.Fprintf(&result, " A%d ", cell.Count)
			case engine.PlayerB:
				fmt.Fprintf(&result, " B%d ", cell.Count)
			default:
				result.WriteString("  . ")
			}
		}
		result.WriteString("\n")
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	if !result.Applied {
		return fmt.Sprintf("Move REJECTED (%s). The board is unchanged.\n\n%s",
			result.RejectReason, formatGameState(&result.GameState))
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s placed at (%d,%d).\n", result.Player, result.Move.Row, result.Move.Col)
	if result.Outcome.Explosions > 0 {
		fmt.Fprintf(&out, "Chain reaction: %d explosions over %d rounds, %d enemy units captured.\n",
			result.Outcome.Explosions, result.Outcome.Rounds, result.Outcome.CapturedUnits)
	}
	out.WriteString("\n")
	out.WriteString(formatGameState(&result.GameState))
	return out.String()
}
