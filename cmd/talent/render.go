package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/client"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

const timeLayout = "2006-01-02 15:04"

// nolint:gochecknoglobals
var (
	activeUp   = color.New(color.FgHiGreen, color.Bold)
	activeDown = color.New(color.FgHiRed, color.Bold)
	faint      = color.New(color.FgHiBlack)
	title      = color.New(color.FgHiMagenta, color.Bold)
	failure    = color.New(color.FgRed)
)

func printError(err error) {
	if client.IsExpired(err) {
		failure.Fprintln(os.Stderr, "You need to log in: talent login --email <email>")
		return
	}
	failure.Fprintln(os.Stderr, err.Error())
}

func debug(v interface{}) {
	if opts.Debug {
		spew.Fdump(stdout, v)
	}
}

func renderTable(rows [][]string) error {
	table := tablewriter.NewWriter(stdout)
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// voteLabel highlights the direction the identity voted for.
func voteLabel(up, down uint32, vote entities.VoteType) string {
	u := fmt.Sprintf("▲ %d", up)
	d := fmt.Sprintf("▼ %d", down)

	switch vote {
	case entities.Upvote:
		u = activeUp.Sprint(u)
	case entities.Downvote:
		d = activeDown.Sprint(d)
	case entities.NoVote, entities.RemoveVote:
	}

	return u + " " + d
}

func renderContentList(items []api.Content) error {
	rows := [][]string{{"ID", "Title", "By", "Votes", "Engagement", "Created"}}
	for _, v := range items {
		rows = append(rows, []string{
			v.ID,
			v.Title,
			v.User.Name,
			voteLabel(v.Upvotes, v.Downvotes, entities.VoteType(v.UserVote)),
			strconv.FormatUint(v.Engagement(), 10),
			v.CreatedAt.Local().Format(timeLayout),
		})
	}

	return renderTable(rows)
}

func renderContent(c api.Content) error {
	t, _ := entities.ParseContentType(c.Type)

	title.Fprintln(stdout, c.Title)
	fmt.Fprintf(stdout, "%s by %s, %s\n", c.Type, c.User.Name, c.CreatedAt.Local().Format(timeLayout))
	if c.Category != "" || len(c.Tags) > 0 {
		faint.Fprintf(stdout, "%s %s\n", c.Category, strings.Join(c.Tags, ", "))
	}
	if c.Description != "" {
		fmt.Fprintln(stdout, c.Description)
	}
	if c.MediaURL != "" {
		fmt.Fprintln(stdout, c.MediaURL)
	}
	if c.Body != "" {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, c.Body)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s  %s %d  net %d\n",
		voteLabel(c.Upvotes, c.Downvotes, entities.VoteType(c.UserVote)),
		t.CounterName(), c.Engagement(), c.NetScore(),
	)

	fmt.Fprintf(stdout, "\nComments (%d)\n", len(c.Comments))
	for _, v := range c.Comments {
		faint.Fprintf(stdout, "%s %s: ", v.CreatedAt.Local().Format(timeLayout), v.User.Name)
		fmt.Fprintln(stdout, v.Text)
	}

	return nil
}

func renderRequests(requests []api.ContentRequest) error {
	rows := [][]string{{"ID", "Type", "Title", "By", "Status", "Submitted"}}
	for _, v := range requests {
		rows = append(rows, []string{
			v.ID,
			v.Type,
			v.Title,
			v.User.Name,
			v.Status,
			v.CreatedAt.Local().Format(timeLayout),
		})
	}

	return renderTable(rows)
}

func renderNotifications(n []api.Notification) error {
	rows := [][]string{{"ID", "", "Title", "Message", "Link", "Received"}}
	for _, v := range n {
		mark := "•"
		if v.Read {
			mark = ""
		}

		var link string
		if v.ContentID != "" {
			link = v.ContentType + "/" + v.ContentID
		}

		rows = append(rows, []string{
			v.ID,
			mark,
			v.Title,
			v.Message,
			link,
			v.CreatedAt.Local().Format(timeLayout),
		})
	}

	return renderTable(rows)
}

func renderUser(u api.User) error {
	return renderTable([][]string{
		{"ID", u.ID},
		{"Name", u.Name},
		{"Email", u.Email},
		{"Student ID", u.StudentID},
		{"Department", u.Department},
		{"Bio", u.Bio},
		{"Role", u.Role},
		{"Member since", u.CreatedAt.Local().Format(time.RFC1123)},
	})
}
