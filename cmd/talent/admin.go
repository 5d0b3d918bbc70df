package main

import (
	"fmt"
	"strings"
)

type pendingCommand struct{}

func (c *pendingCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Pending(ctx)
	if err != nil {
		return err
	}
	debug(resp)

	if len(resp.Requests) == 0 {
		fmt.Fprintln(stdout, "No pending submissions")
		return nil
	}

	return renderRequests(resp.Requests)
}

type requestArgs struct {
	ID string `positional-arg-name:"id" description:"request id"`
}

type approveCommand struct {
	Args requestArgs `positional-args:"yes" required:"yes"`
}

func (c *approveCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	item, err := cl.Approve(ctx, c.Args.ID)
	if err != nil {
		return err
	}
	debug(item)

	fmt.Fprintf(stdout, "Approved, published as %s %s\n", item.Type, item.ID)

	return nil
}

type rejectCommand struct {
	Reason string `long:"reason" description:"reason shown to the submitter"`

	Args requestArgs `positional-args:"yes" required:"yes"`
}

func (c *rejectCommand) Execute(_ []string) error {
	if strings.TrimSpace(c.Reason) == "" {
		return fmt.Errorf("%w: reason", ErrMissingField)
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	r, err := cl.Reject(ctx, c.Args.ID, c.Reason)
	if err != nil {
		return err
	}
	debug(r)

	fmt.Fprintf(stdout, "Rejected %q\n", r.Title)

	return nil
}
