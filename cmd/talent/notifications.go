package main

import (
	"fmt"
)

type notificationsCommand struct{}

func (c *notificationsCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Notifications(ctx)
	if err != nil {
		return err
	}
	debug(resp)

	if len(resp.Notifications) == 0 {
		fmt.Fprintln(stdout, "No notifications")
		return nil
	}

	return renderNotifications(resp.Notifications)
}

type unreadCommand struct{}

func (c *unreadCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	n, err := cl.UnreadCount(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, n)

	return nil
}

type markReadCommand struct {
	Args struct {
		IDs []string `positional-arg-name:"id" description:"notification ids"`
	} `positional-args:"yes"`
}

func (c *markReadCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := cl.MarkRead(ctx, c.Args.IDs...); err != nil {
		return err
	}

	if len(c.Args.IDs) == 0 {
		fmt.Fprintln(stdout, "All notifications marked as read")
	} else {
		fmt.Fprintf(stdout, "%d notifications marked as read\n", len(c.Args.IDs))
	}

	return nil
}

type deleteNotificationCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"notification id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *deleteNotificationCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := cl.DeleteNotification(ctx, c.Args.ID); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Notification deleted")

	return nil
}
