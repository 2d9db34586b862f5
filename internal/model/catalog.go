package model

import "sort"

// Position codes carried by Player.ElementType.
const (
	Goalkeeper = 1
	Defender   = 2
	Midfielder = 3
	Forward    = 4
)

type Player struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	WebName     string `json:"web_name"`
	TeamID      int    `json:"team"`
	ElementType int    `json:"element_type"`
	TotalPoints int    `json:"total_points"`
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Event is one gameweek of the season calendar.
type Event struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	DeadlineTime      string `json:"deadline_time"`
	AverageEntryScore int    `json:"average_entry_score"`
	HighestScore      int    `json:"highest_score"`
	IsPrevious        bool   `json:"is_previous"`
	IsCurrent         bool   `json:"is_current"`
	IsNext            bool   `json:"is_next"`
	Finished          bool   `json:"finished"`
	DataChecked       bool   `json:"data_checked"`
}

// Catalog is the league-wide reference data loaded once per analysis run.
// A nil *Catalog is valid and behaves as an empty one.
type Catalog struct {
	Players []Player `json:"elements"`
	Teams   []Team   `json:"teams"`
	Events  []Event  `json:"events"`
}

func (c *Catalog) PlayerByID() map[int]Player {
	out := make(map[int]Player)
	if c == nil {
		return out
	}
	for _, p := range c.Players {
		out[p.ID] = p
	}
	return out
}

func (c *Catalog) TeamShort() map[int]string {
	out := make(map[int]string)
	if c == nil {
		return out
	}
	for _, t := range c.Teams {
		out[t.ID] = t.ShortName
	}
	return out
}

// ElementTypes maps player id to position code.
func (c *Catalog) ElementTypes() map[int]int {
	out := make(map[int]int)
	if c == nil {
		return out
	}
	for _, p := range c.Players {
		out[p.ID] = p.ElementType
	}
	return out
}

// FinishedEvents returns the ids of finished gameweeks in ascending order.
func (c *Catalog) FinishedEvents() []int {
	if c == nil {
		return nil
	}
	out := make([]int, 0, len(c.Events))
	for _, e := range c.Events {
		if e.Finished {
			out = append(out, e.ID)
		}
	}
	sort.Ints(out)
	return out
}

// CurrentGameweek resolves the current gameweek: the event flagged current,
// otherwise the last finished event, otherwise 1.
func (c *Catalog) CurrentGameweek() int {
	if c == nil || len(c.Events) == 0 {
		return 1
	}
	for _, e := range c.Events {
		if e.IsCurrent {
			return e.ID
		}
	}
	finished := c.FinishedEvents()
	if len(finished) > 0 {
		return finished[len(finished)-1]
	}
	return 1
}
