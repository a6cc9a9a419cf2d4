// Package service provides the business logic layer for the Chain Reaction
// game server.
//
// The service package implements:
//   - Multi-match management on top of the match registry
//   - Human move processing with rejection reporting
//   - Orchestration of the automated opponent's replies
//   - Move history and live score access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. MatchManager handles match creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing match isolation and orchestration. Each
// match holds its own engine instance with independent state. The engine's
// own turn discipline is the single source of truth for move legality; the
// service only translates rejections into results the transports can relay.
//
// Usage:
//
//	matches := session.NewManager()
//	gameService := service.NewGameService(matches, ai.NewOpponent())
//
//	info, err := gameService.CreateMatch(ctx, service.ModeVersusComputer)
//	result, err := gameService.Move(ctx, info.ID, 2, 2, engine.PlayerA)
//	if result.Applied {
//		reply, err := gameService.ComputerMove(ctx, info.ID)
//	}
//
// Modes:
//
// A match runs in one of two modes: two humans alternating on the same
// client, or a human versus the built-in automated opponent, which always
// plays PlayerB. The engine is identical in both; only the caller of
// ComputerMove differs.
package service
