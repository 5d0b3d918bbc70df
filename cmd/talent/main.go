package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/iftakhar005/talenthunt/internal/cache/memory"
	"github.com/iftakhar005/talenthunt/internal/client"
	"github.com/iftakhar005/talenthunt/internal/session"
)

var (
	// ErrPasswordMismatch is returned when password confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrMissingField is returned when a required flag or argument is empty.
	ErrMissingField = errors.New("missing required field")
)

// nolint:lll,gochecknoglobals
var opts = struct {
	API      string        `long:"api" env:"TALENT_API" default:"http://localhost:5000/api" description:"backend api url"`
	Session  string        `long:"session" env:"TALENT_SESSION" description:"session file path, defaults to $HOME/.talenthunt/session.json"`
	Timeout  time.Duration `long:"timeout" env:"TALENT_TIMEOUT" default:"30s" description:"request timeout, 0 means no timeout"`
	CacheTTL time.Duration `long:"cache.ttl" env:"TALENT_CACHE_TTL" default:"30s" description:"ttl of cached reads, 0 disables cache"`
	Debug    bool          `long:"debug" description:"dump decoded responses"`

	LogLevel string `long:"log.level" env:"LOG_LEVEL" default:"warning" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`

	Register registerCommand `command:"register" description:"start registration and send verification code"`
	Verify   verifyCommand   `command:"verify" description:"confirm email with the code and log in"`
	Resend   resendCommand   `command:"resend" description:"send verification code again"`
	Login    loginCommand    `command:"login" description:"log in"`
	Logout   logoutCommand   `command:"logout" description:"forget stored token"`
	Me       meCommand       `command:"me" description:"show current profile"`
	Profile  profileCommand  `command:"profile" description:"update current profile"`

	List      listCommand      `command:"list" description:"list videos, audios or blogs"`
	Dashboard dashboardCommand `command:"dashboard" description:"show first page of every content type"`
	Show      showCommand      `command:"show" description:"show content with comments"`
	Vote      voteCommand      `command:"vote" description:"upvote or downvote content, repeating the same vote removes it"`
	Comment   commentCommand   `command:"comment" description:"comment content"`
	Play      playCommand      `command:"play" description:"open content and count a view or play"`

	Submit submitCommand `command:"submit" description:"submit content for moderation"`
	Draft  draftCommand  `command:"draft" description:"save, show or clear submission drafts"`

	Pending pendingCommand `command:"pending" description:"list pending submissions (admin)"`
	Approve approveCommand `command:"approve" description:"approve submission (admin)"`
	Reject  rejectCommand  `command:"reject" description:"reject submission (admin)"`

	Notifications notificationsCommand      `command:"notifications" description:"list notifications"`
	Unread        unreadCommand             `command:"unread" description:"show unread notifications count"`
	MarkRead      markReadCommand           `command:"mark-read" description:"mark notifications as read, all when no ids are given"`
	Delete        deleteNotificationCommand `command:"delete-notification" description:"delete notification"`

	Leaderboard leaderboardCommand `command:"leaderboard" description:"show content ranked by net score"`
}{}

// nolint:gochecknoglobals
var stdout io.Writer = os.Stdout

func main() {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Talent Hunt"
	parser.LongDescription = "Talent Hunt terminal client"
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
		logrus.SetLevel(lvl)

		if command == nil {
			return nil
		}
		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(stdout, flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(2)
		}

		printError(err)
		os.Exit(1)
	}
}

func sessionPath() string {
	if opts.Session != "" {
		return opts.Session
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".talenthunt", "session.json")
	}

	return filepath.Join(home, ".talenthunt", "session.json")
}

func newClient() (*client.Client, error) {
	s, err := session.Open(session.NewFileStore(sessionPath()))
	if err != nil {
		return nil, err
	}

	o := []client.Option{client.WithTimeout(opts.Timeout)}
	if opts.CacheTTL > 0 {
		o = append(o, client.WithCache(memory.NewStorage(), opts.CacheTTL))
	}

	return client.New(opts.API, s, o...), nil
}

// commandContext is cancelled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
