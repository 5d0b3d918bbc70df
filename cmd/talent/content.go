package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iftakhar005/talenthunt/internal/client"
	"github.com/iftakhar005/talenthunt/internal/engagement"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

type contentArgs struct {
	Type string `positional-arg-name:"type" description:"video, audio or blog"`
	ID   string `positional-arg-name:"id" description:"content id"`
}

func (a contentArgs) parse() (entities.ContentType, string, error) {
	if a.Type == "" || a.ID == "" {
		return "", "", fmt.Errorf("%w: type and id", ErrMissingField)
	}

	t, err := entities.ParseContentType(a.Type)
	if err != nil {
		return "", "", err
	}

	return t, a.ID, nil
}

type listCommand struct {
	Limit int    `long:"limit" default:"20" description:"page size"`
	Page  int    `long:"page" default:"1" description:"page number"`
	Sort  string `long:"sort" default:"newest" choice:"newest" choice:"popular" choice:"views" choice:"top" description:"sort order"`

	Args struct {
		Type string `positional-arg-name:"type" description:"videos, audios or blogs"`
	} `positional-args:"yes" required:"yes"`
}

func (c *listCommand) Execute(_ []string) error {
	t, err := entities.ParseContentType(c.Args.Type)
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.ListContent(ctx, t, client.ListParams{
		Limit: c.Limit,
		Page:  c.Page,
		Sort:  c.Sort,
	})
	if err != nil {
		return err
	}
	debug(resp)

	if err := renderContentList(resp.Items); err != nil {
		return err
	}
	faint.Fprintf(stdout, "page %d, %d per page\n", resp.Page, resp.Limit)

	return nil
}

type dashboardCommand struct {
	Limit int `long:"limit" default:"5" description:"items per content type"`
}

func (c *dashboardCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	d, err := cl.Dashboard(ctx, client.ListParams{Limit: c.Limit, Sort: "newest"})
	if err != nil {
		return err
	}
	debug(d)

	for _, t := range entities.ContentTypes {
		title.Fprintln(stdout, strings.ToUpper(t.Collection()))
		if err := renderContentList(d[t]); err != nil {
			return err
		}
	}

	return nil
}

type showCommand struct {
	Args contentArgs `positional-args:"yes" required:"yes"`
}

func (c *showCommand) Execute(_ []string) error {
	t, id, err := c.Args.parse()
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	item, err := cl.GetContent(ctx, t, id)
	if err != nil {
		return err
	}
	debug(item)

	return renderContent(*item)
}

type voteCommand struct {
	Down bool `long:"down" description:"downvote instead of upvote"`

	Args contentArgs `positional-args:"yes" required:"yes"`
}

func (c *voteCommand) Execute(_ []string) error {
	t, id, err := c.Args.parse()
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	item, err := cl.GetContent(ctx, t, id)
	if err != nil {
		return err
	}

	direction := entities.Upvote
	if c.Down {
		direction = entities.Downvote
	}

	state, err := engagement.NewVoter(cl, t, id, engagement.StateOf(*item)).Cast(ctx, direction)
	if err != nil {
		return err
	}
	debug(state)

	fmt.Fprintf(stdout, "%s  net %d\n", voteLabel(state.Upvotes, state.Downvotes, state.UserVote), state.NetScore())

	return nil
}

type commentCommand struct {
	Args struct {
		Type string   `positional-arg-name:"type" description:"video, audio or blog"`
		ID   string   `positional-arg-name:"id" description:"content id"`
		Text []string `positional-arg-name:"text" description:"comment text"`
	} `positional-args:"yes" required:"yes"`
}

func (c *commentCommand) Execute(_ []string) error {
	t, id, err := contentArgs{Type: c.Args.Type, ID: c.Args.ID}.parse()
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	item, err := cl.GetContent(ctx, t, id)
	if err != nil {
		return err
	}

	updated, err := engagement.NewCommenter(cl, cl.Session(), *item).Post(ctx, strings.Join(c.Args.Text, " "))
	if err != nil {
		return err
	}
	debug(updated)

	return renderContent(updated)
}

type playCommand struct {
	CountAfter *time.Duration `long:"count-after" description:"continuous playback needed before counting, defaults to 3s for videos and 0 otherwise"`
	Duration   time.Duration  `long:"for" default:"0s" description:"how long to keep playing, defaults to count-after"`

	Args contentArgs `positional-args:"yes" required:"yes"`
}

func (c *playCommand) Execute(_ []string) error {
	t, id, err := c.Args.parse()
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	item, err := cl.GetContent(ctx, t, id)
	if err != nil {
		return err
	}

	if err := renderContent(*item); err != nil {
		return err
	}

	policy := engagement.PolicyFor(t)
	if c.CountAfter != nil {
		policy = engagement.Delayed(*c.CountAfter)
	}

	playFor := c.Duration
	if playFor < policy.Delay {
		playFor = policy.Delay
	}

	g := engagement.NewPlayGuard(cl, t, id, policy)
	defer g.Pause()

	g.Play(ctx)

	if playFor > 0 {
		select {
		case <-time.After(playFor):
		case <-ctx.Done():
		}
	}

	if err := g.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			return err
		}
		faint.Fprintf(stdout, "stopped before the %s was counted\n", t.EngagementAction())
		return nil
	}

	if g.Counted() {
		faint.Fprintf(stdout, "%s counted\n", strings.TrimSuffix(t.CounterName(), "s"))
	} else {
		faint.Fprintf(stdout, "stopped before the %s was counted\n", t.EngagementAction())
	}

	return nil
}

type leaderboardCommand struct {
	Type  string `long:"type" default:"all" description:"video, audio, blog or all"`
	Limit int    `long:"limit" default:"10" description:"entries count"`
}

func (c *leaderboardCommand) Execute(_ []string) error {
	var t entities.ContentType
	if c.Type != "all" {
		var err error
		if t, err = entities.ParseContentType(c.Type); err != nil {
			return err
		}
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Leaderboard(ctx, t, c.Limit)
	if err != nil {
		return err
	}
	debug(resp)

	rows := [][]string{{"#", "Type", "Title", "By", "Net", "Votes"}}
	for _, v := range resp.Entries {
		rows = append(rows, []string{
			strconv.Itoa(v.Rank),
			v.Content.Type,
			v.Content.Title,
			v.Content.User.Name,
			strconv.FormatInt(v.NetScore, 10),
			voteLabel(v.Content.Upvotes, v.Content.Downvotes, entities.NoVote),
		})
	}

	return renderTable(rows)
}
