package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/points"
)

type LeagueArgs struct {
	LeagueID int `json:"league_id,omitempty" jsonschema:"Classic league id (0 = configured default)"`
}

type LeagueEntryArgs struct {
	LeagueID int `json:"league_id,omitempty" jsonschema:"Classic league id (0 = configured default)"`
	EntryID  int `json:"entry_id,omitempty" jsonschema:"Entry id (0 = every manager)"`
}

type ManagerArgs struct {
	LeagueID int `json:"league_id,omitempty" jsonschema:"Classic league id (0 = configured default)"`
	EntryID  int `json:"entry_id" jsonschema:"Entry id (required)"`
}

type ChipROIArgs struct {
	LeagueID int    `json:"league_id,omitempty" jsonschema:"Classic league id (0 = configured default)"`
	Chip     string `json:"chip,omitempty" jsonschema:"Chip name: wildcard|3xc|bboost|freehit (empty = all)"`
}

type GameweekPointsArgs struct {
	LeagueID int `json:"league_id,omitempty" jsonschema:"Classic league id (0 = configured default)"`
	EntryID  int `json:"entry_id" jsonschema:"Entry id (required)"`
	GW       int `json:"gw,omitempty" jsonschema:"Gameweek (0 = current)"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type StandingsRow struct {
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	RankChange int    `json:"rank_change"`
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
	Chip       string `json:"chip"`
}

type StandingsOutput struct {
	LeagueID     int            `json:"league_id"`
	LeagueName   string         `json:"league_name"`
	CurrentEvent int            `json:"current_event"`
	Rows         []StandingsRow `json:"rows"`
}

type GameweekPointsOutput struct {
	LeagueID      int            `json:"league_id"`
	HistoryPoints *int           `json:"history_points"`
	Chip          string         `json:"chip"`
	Result        *points.Result `json:"result"`
}

func (s *server) registerTools() {
	addTool(s, &mcp.Tool{
		Name:        "league_insights",
		Description: "Season insights per manager: all-play record, captaincy, bench loss, transfer and chip ROI, consistency, template similarity and differentials",
	}, s.leagueInsights)

	addTool(s, &mcp.Tool{
		Name:        "chip_roi",
		Description: "Estimated gain of every chip played in the league, best first",
	}, s.chipROI)

	addTool(s, &mcp.Tool{
		Name:        "season_anomalies",
		Description: "Best gameweek score, biggest bench waste and top differential players of the season",
	}, s.seasonAnomalies)

	addTool(s, &mcp.Tool{
		Name:        "team_breakdown",
		Description: "Per-player breakdown of one manager's season, with rival managers who owned the same players",
	}, s.teamBreakdown)

	addTool(s, &mcp.Tool{
		Name:        "standings",
		Description: "League table with rank movement and the chip played in the current gameweek",
	}, s.standings)

	addTool(s, &mcp.Tool{
		Name:        "data_quality",
		Description: "Pick-list issues found while loading the league",
	}, s.dataQuality)

	addTool(s, &mcp.Tool{
		Name:        "gameweek_points",
		Description: "One manager's gameweek itemized by pick",
	}, s.gameweekPoints)
}

func addTool[T any](s *server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.mcp, tool, func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		res, out, err := handler(ctx, req, args)
		failed := err != nil || (res != nil && res.IsError)
		s.metrics.ToolCall(tool.Name, failed)
		if failed {
			s.log.WithField("tool", tool.Name).Warn("tool call failed")
		}
		return res, out, err
	})
}

func (s *server) leagueID(id int) (int, error) {
	if id > 0 {
		return id, nil
	}
	if s.cfg.LeagueID > 0 {
		return s.cfg.LeagueID, nil
	}
	return 0, fmt.Errorf("league_id is required")
}

func (s *server) load(ctx context.Context, id int) (*analysis, error) {
	leagueID, err := s.leagueID(id)
	if err != nil {
		return nil, err
	}
	return s.cache.get(ctx, leagueID)
}

func (s *server) leagueInsights(ctx context.Context, req *mcp.CallToolRequest, args LeagueEntryArgs) (*mcp.CallToolResult, any, error) {
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	if args.EntryID == 0 {
		return toolJSON(a.Insights)
	}
	m, ok := a.Insights.Manager(args.EntryID)
	if !ok {
		return toolError(fmt.Errorf("manager not found: %d", args.EntryID)), nil, nil
	}
	return toolJSON(map[string]any{
		"league_id":   a.Insights.LeagueID,
		"manager":     m,
		"chip_events": chipEventsForEntry(a, args.EntryID),
	})
}

func (s *server) chipROI(ctx context.Context, req *mcp.CallToolRequest, args ChipROIArgs) (*mcp.CallToolResult, any, error) {
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	switch args.Chip {
	case "", model.ChipWildcard, model.ChipTripleCaptain, model.ChipBenchBoost, model.ChipFreeHit:
	default:
		return toolError(fmt.Errorf("unknown chip: %q", args.Chip)), nil, nil
	}
	return toolJSON(map[string]any{
		"league_id":   a.Insights.LeagueID,
		"chip":        args.Chip,
		"chip_events": a.Insights.ChipEventsFor(args.Chip),
	})
}

func (s *server) seasonAnomalies(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(a.Anomalies)
}

func (s *server) teamBreakdown(ctx context.Context, req *mcp.CallToolRequest, args ManagerArgs) (*mcp.CallToolResult, any, error) {
	if args.EntryID == 0 {
		return toolError(fmt.Errorf("entry_id is required")), nil, nil
	}
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	team, ok := breakdownFor(a, args.EntryID)
	if !ok {
		return toolError(fmt.Errorf("manager not found: %d", args.EntryID)), nil, nil
	}
	return toolJSON(team)
}

func (s *server) standings(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	league := a.League
	out := StandingsOutput{
		LeagueID:     league.ID,
		LeagueName:   league.Name,
		CurrentEvent: league.CurrentEvent,
		Rows:         make([]StandingsRow, 0, len(league.Managers)),
	}
	for _, m := range league.Managers {
		out.Rows = append(out.Rows, StandingsRow{
			Rank:       m.Rank,
			LastRank:   m.LastRank,
			RankChange: model.RankChange(m.Rank, m.LastRank),
			Entry:      m.Entry,
			EntryName:  m.EntryName,
			PlayerName: m.PlayerName,
			Total:      m.Total,
			EventTotal: m.EventTotal,
			Chip:       m.ChipForEvent(league.CurrentEvent),
		})
	}
	return toolJSON(out)
}

func (s *server) dataQuality(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(a.Report)
}

func (s *server) gameweekPoints(ctx context.Context, req *mcp.CallToolRequest, args GameweekPointsArgs) (*mcp.CallToolResult, any, error) {
	if args.EntryID == 0 {
		return toolError(fmt.Errorf("entry_id is required")), nil, nil
	}
	a, err := s.load(ctx, args.LeagueID)
	if err != nil {
		return toolError(err), nil, nil
	}
	gw := args.GW
	if gw <= 0 {
		gw = a.League.CurrentEvent
	}

	for i := range a.League.Managers {
		m := &a.League.Managers[i]
		if m.Entry != args.EntryID {
			continue
		}
		picks, ok := m.Picks.Usable(gw)
		if !ok {
			return toolError(fmt.Errorf("no picks for entry %d gw %d", args.EntryID, gw)), nil, nil
		}
		out := GameweekPointsOutput{
			LeagueID: a.League.ID,
			Chip:     m.ChipForEvent(gw),
			Result:   points.BuildResult(m.Entry, gw, picks),
		}
		if h, ok := m.HistoryByEvent()[gw]; ok {
			out.HistoryPoints = model.IntPtr(h.Points)
		}
		return toolJSON(out)
	}
	return toolError(fmt.Errorf("manager not found: %d", args.EntryID)), nil, nil
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
