package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridgames/chainreaction/game/ai"
	"github.com/gridgames/chainreaction/game/engine"
	"github.com/gridgames/chainreaction/game/service"
	"github.com/gridgames/chainreaction/game/session"
)

func newService() service.GameService {
	return service.NewGameService(session.NewManager(), ai.NewOpponentWithSeed(7))
}

func TestCreateMatch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, service.ModeTwoPlayer, info.Mode)
	assert.Equal(t, engine.None, info.ComputerSide)
	assert.Equal(t, engine.PlayerA, info.GameState.CurrentTurn)

	vs, err := svc.CreateMatch(ctx, service.ModeVersusComputer)
	require.NoError(t, err)
	assert.Equal(t, engine.PlayerB, vs.ComputerSide)

	_, err = svc.CreateMatch(ctx, service.Mode("bogus"))
	assert.Error(t, err)
}

func TestMove_AppliesAndReportsEvents(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	result, err := svc.Move(ctx, info.ID, 2, 2, engine.PlayerA)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, engine.PlayerB, result.GameState.CurrentTurn)
	require.NotEmpty(t, result.Events)
	assert.Equal(t, "placed", result.Events[0].Type)
}

func TestMove_RejectionIsNotAnError(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	// PlayerB tries to move first.
	result, err := svc.Move(ctx, info.ID, 0, 0, engine.PlayerB)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, service.RejectOutOfTurn, result.RejectReason)

	// Nothing changed.
	state, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.MoveCount)
}

func TestMove_OutOfBoundsIsAnError(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	_, err = svc.Move(ctx, info.ID, 9, 9, engine.PlayerA)
	assert.ErrorIs(t, err, engine.ErrOutOfBounds)
}

func TestComputerMove(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeVersusComputer)
	require.NoError(t, err)

	// Human opens.
	result, err := svc.Move(ctx, info.ID, 2, 2, engine.PlayerA)
	require.NoError(t, err)
	require.True(t, result.Applied)

	reply, err := svc.ComputerMove(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, reply.Applied)
	assert.Equal(t, engine.PlayerB, reply.Player)
	require.NotNil(t, reply.Move)
	assert.Equal(t, engine.PlayerA, reply.GameState.CurrentTurn)
	assert.Equal(t, 2, reply.GameState.MoveCount)
}

func TestComputerMove_TwoPlayerMatchRefused(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	_, err = svc.ComputerMove(ctx, info.ID)
	assert.ErrorIs(t, err, service.ErrNotComputerMatch)
}

func TestComputerMove_OutOfTurnRejected(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeVersusComputer)
	require.NoError(t, err)

	// It is the human's turn; the automated reply must be a clean rejection.
	reply, err := svc.ComputerMove(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, reply.Applied)
	assert.Equal(t, service.RejectOutOfTurn, reply.RejectReason)
}

func TestReset(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	_, err = svc.Move(ctx, info.ID, 1, 1, engine.PlayerA)
	require.NoError(t, err)

	state, err := svc.Reset(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.MoveCount)
	assert.Equal(t, engine.PlayerA, state.CurrentTurn)
	assert.Equal(t, 0, engine.TotalUnits(state.Board))
}

func TestGetScores(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	_, err = svc.Move(ctx, info.ID, 2, 2, engine.PlayerA)
	require.NoError(t, err)
	_, err = svc.Move(ctx, info.ID, 0, 0, engine.PlayerB)
	require.NoError(t, err)

	report, err := svc.GetScores(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scores.PlayerA)
	assert.Equal(t, 1, report.Scores.PlayerB)
	assert.False(t, report.Terminated)
	assert.Equal(t, engine.None, report.Winner)
}

func TestGetMoveHistory(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, service.ModeTwoPlayer)
	require.NoError(t, err)

	moves := []struct {
		row, col int
		player   engine.Owner
	}{
		{2, 2, engine.PlayerA},
		{0, 0, engine.PlayerB},
		{2, 2, engine.PlayerA},
	}
	for _, mv := range moves {
		result, err := svc.Move(ctx, info.ID, mv.row, mv.col, mv.player)
		require.NoError(t, err)
		require.True(t, result.Applied)
	}

	history, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 3, history.TotalMoves)
	require.Len(t, history.Moves, 3)
	assert.Equal(t, engine.PlayerA, history.Moves[0].Player)
	assert.Equal(t, 1, history.Moves[0].MoveNumber)

	desc, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, 3, desc.Moves[0].MoveNumber)
}

func TestUnknownMatch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.GetGameState(ctx, "missing")
	assert.Error(t, err)
	_, err = svc.Move(ctx, "missing", 0, 0, engine.PlayerA)
	assert.Error(t, err)
	assert.Error(t, svc.DeleteMatch(ctx, "missing"))
}
