package main

import (
	"fmt"
	"strings"

	"github.com/iftakhar005/talenthunt/internal/api"
)

type registerCommand struct {
	Name       string `long:"name" description:"full name"`
	Email      string `long:"email" description:"university email"`
	StudentID  string `long:"student-id" description:"student id"`
	Department string `long:"department" description:"department"`
	Password   string `long:"password" env:"TALENT_PASSWORD" description:"password"`
	Confirm    string `long:"confirm" env:"TALENT_PASSWORD_CONFIRM" description:"password confirmation"`
}

func (c *registerCommand) Execute(_ []string) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return fmt.Errorf("%w: name, email and password", ErrMissingField)
	}
	if c.Password != c.Confirm {
		return ErrPasswordMismatch
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.SendVerification(ctx, api.SendVerificationRequest{
		Name:       strings.TrimSpace(c.Name),
		Email:      strings.TrimSpace(c.Email),
		StudentID:  c.StudentID,
		Department: c.Department,
		Password:   c.Password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, resp.Message)
	fmt.Fprintf(stdout, "Confirm it with: talent verify --email %s --code <code>\n", strings.TrimSpace(c.Email))

	return nil
}

type verifyCommand struct {
	Email string `long:"email" description:"email the code was sent to"`
	Code  string `long:"code" description:"verification code"`
}

func (c *verifyCommand) Execute(_ []string) error {
	if c.Email == "" || c.Code == "" {
		return fmt.Errorf("%w: email and code", ErrMissingField)
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.VerifyCode(ctx, c.Email, c.Code)
	if err != nil {
		return err
	}
	debug(resp)

	fmt.Fprintf(stdout, "Welcome, %s!\n", resp.User.Name)

	return nil
}

type resendCommand struct {
	Email string `long:"email" description:"email the code was sent to"`
}

func (c *resendCommand) Execute(_ []string) error {
	if c.Email == "" {
		return fmt.Errorf("%w: email", ErrMissingField)
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.ResendCode(ctx, c.Email)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, resp.Message)

	return nil
}

type loginCommand struct {
	Email    string `long:"email" description:"email"`
	Password string `long:"password" env:"TALENT_PASSWORD" description:"password"`
}

func (c *loginCommand) Execute(_ []string) error {
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("%w: email and password", ErrMissingField)
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Login(ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	debug(resp)

	fmt.Fprintf(stdout, "Logged in as %s\n", resp.User.Name)

	return nil
}

type logoutCommand struct{}

func (c *logoutCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	if err := cl.Logout(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Logged out")

	return nil
}

type meCommand struct{}

func (c *meCommand) Execute(_ []string) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	u, err := cl.Me(ctx)
	if err != nil {
		return err
	}
	debug(u)

	return renderUser(*u)
}

type profileCommand struct {
	Name       *string `long:"name" description:"new name"`
	Department *string `long:"department" description:"new department"`
	Bio        *string `long:"bio" description:"new bio"`
	Avatar     *string `long:"avatar" description:"new avatar url"`
}

func (c *profileCommand) Execute(_ []string) error {
	if c.Name == nil && c.Department == nil && c.Bio == nil && c.Avatar == nil {
		return fmt.Errorf("%w: at least one of name, department, bio, avatar", ErrMissingField)
	}

	cl, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	u, err := cl.UpdateProfile(ctx, api.ProfileUpdateRequest{
		Name:       c.Name,
		Department: c.Department,
		Bio:        c.Bio,
		Avatar:     c.Avatar,
	})
	if err != nil {
		return err
	}

	return renderUser(*u)
}
