package main

import (
	"fmt"
	"strings"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/client"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

type submissionFields struct {
	Title        string   `long:"title" description:"title"`
	Description  string   `long:"description" description:"short description"`
	Body         string   `long:"body" description:"blog text"`
	MediaURL     string   `long:"media-url" description:"video or audio url"`
	ThumbnailURL string   `long:"thumbnail-url" description:"thumbnail url"`
	Category     string   `long:"category" description:"category"`
	Tags         []string `long:"tag" description:"tag, may be repeated"`
}

// merge overrides draft fields by non-empty flags.
func (f submissionFields) merge(d api.SubmissionRequest) api.SubmissionRequest {
	if f.Title != "" {
		d.Title = f.Title
	}
	if f.Description != "" {
		d.Description = f.Description
	}
	if f.Body != "" {
		d.Body = f.Body
	}
	if f.MediaURL != "" {
		d.MediaURL = f.MediaURL
	}
	if f.ThumbnailURL != "" {
		d.ThumbnailURL = f.ThumbnailURL
	}
	if f.Category != "" {
		d.Category = f.Category
	}
	if len(f.Tags) > 0 {
		d.Tags = f.Tags
	}
	return d
}

type submitCommand struct {
	submissionFields

	FromDraft bool `long:"from-draft" description:"start from the saved draft of the type, the draft is cleared on success"`

	Args struct {
		Type string `positional-arg-name:"type" description:"video, audio or blog"`
	} `positional-args:"yes" required:"yes"`
}

func (c *submitCommand) Execute(_ []string) error {
	t, err := entities.ParseContentType(c.Args.Type)
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	var base api.SubmissionRequest
	if c.FromDraft {
		d := cl.Session().Draft(t)
		if d == nil {
			return fmt.Errorf("no %s draft saved", t)
		}
		base = *d
	}

	req := c.merge(base)
	req.Type = string(t)
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Submit(ctx, req)
	if err != nil {
		if client.IsExpired(err) && !c.FromDraft {
			// keep what was typed so it is not lost on re-login
			if derr := cl.Session().SaveDraft(t, req); derr != nil {
				return fmt.Errorf("%s, failed to save draft: %w", err.Error(), derr)
			}
			faint.Fprintf(stdout, "submission saved as %s draft\n", t)
		}
		return err
	}
	debug(resp)

	if c.FromDraft {
		if err := cl.Session().ClearDraft(t); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Submitted %q for review, request %s is %s\n", resp.Title, resp.ID, resp.Status)

	return nil
}

type draftCommand struct {
	submissionFields

	Clear bool `long:"clear" description:"remove the draft"`

	Args struct {
		Type string `positional-arg-name:"type" description:"video, audio or blog"`
	} `positional-args:"yes" required:"yes"`
}

func (c *draftCommand) Execute(_ []string) error {
	t, err := entities.ParseContentType(c.Args.Type)
	if err != nil {
		return err
	}

	cl, err := newClient()
	if err != nil {
		return err
	}
	s := cl.Session()

	if c.Clear {
		if err := s.ClearDraft(t); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s draft cleared\n", t)
		return nil
	}

	var d api.SubmissionRequest
	if v := s.Draft(t); v != nil {
		d = *v
	}

	updated := c.merge(d)
	if !isEmptyDraft(c.submissionFields) {
		if err := s.SaveDraft(t, updated); err != nil {
			return err
		}
	}

	return renderTable([][]string{
		{"Type", string(t)},
		{"Title", updated.Title},
		{"Description", updated.Description},
		{"Body", updated.Body},
		{"Media", updated.MediaURL},
		{"Thumbnail", updated.ThumbnailURL},
		{"Category", updated.Category},
		{"Tags", strings.Join(updated.Tags, ", ")},
	})
}

func isEmptyDraft(f submissionFields) bool {
	return f.Title == "" && f.Description == "" && f.Body == "" && f.MediaURL == "" &&
		f.ThumbnailURL == "" && f.Category == "" && len(f.Tags) == 0
}
