package fetch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aatrey56/fpl-league-insights/internal/model"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

// maxStandingsPages stops a misbehaving has_next from paging forever.
const maxStandingsPages = 200

// /bootstrap-static/
func (c *Client) BootstrapStatic(ctx context.Context, force bool) (*model.Catalog, error) {
	body, err := c.FetchRaw(ctx, "/bootstrap-static/", store.BootstrapPath(), force)
	if err != nil {
		return nil, err
	}
	var catalog model.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("decode bootstrap: %w", err)
	}
	return &catalog, nil
}

// /leagues-classic/{league_id}/standings/?page_standings={n}
//
// Pages are followed until has_next is false and stored as one merged document.
func (c *Client) LeagueStandings(ctx context.Context, leagueID int, force bool) (*model.StandingsDoc, error) {
	rel := store.StandingsPath(leagueID)
	if !force && c.UseCache && c.Store.Exists(rel) {
		var doc model.StandingsDoc
		if err := c.Store.ReadJSON(rel, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	var merged model.StandingsDoc
	for page := 1; page <= maxStandingsPages; page++ {
		body, err := c.FetchRaw(ctx,
			fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page),
			"",
			true,
		)
		if err != nil {
			return nil, err
		}
		var doc model.StandingsDoc
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode standings page %d: %w", page, err)
		}
		if page == 1 {
			merged.League = doc.League
		}
		merged.Standings.Results = append(merged.Standings.Results, doc.Standings.Results...)
		if !doc.Standings.HasNext {
			break
		}
	}
	merged.Standings.Page = 1

	if !c.DisableWrite {
		if err := c.Store.WriteJSON(rel, merged); err != nil {
			return nil, err
		}
	}
	return &merged, nil
}

// /entry/{entry_id}/history/
func (c *Client) EntryHistory(ctx context.Context, entryID int, force bool) (*model.HistoryDoc, error) {
	body, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/history/", entryID),
		store.HistoryPath(entryID),
		force,
	)
	if err != nil {
		return nil, err
	}
	var doc model.HistoryDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode history %d: %w", entryID, err)
	}
	return &doc, nil
}

// /entry/{entry_id}/transfers/
func (c *Client) EntryTransfers(ctx context.Context, entryID int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/transfers/", entryID),
		store.TransfersPath(entryID),
		force,
	)
	return err
}

// /entry/{entry_id}/event/{gw}/picks/
func (c *Client) EntryEventPicks(ctx context.Context, entryID int, gw int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw),
		store.PicksPath(entryID, gw),
		force,
	)
	return err
}

// /event/{gw}/live/
func (c *Client) EventLive(ctx context.Context, gw int, force bool) error {
	_, err := c.FetchRaw(ctx,
		fmt.Sprintf("/event/%d/live/", gw),
		store.LivePath(gw),
		force,
	)
	return err
}
