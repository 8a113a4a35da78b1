// File: trimly/cli.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trimly/agenda"
	"trimly/api"
	"trimly/forms"
	"trimly/session"
)

// cli implements the commands; it stands in for the mobile app's screens.
type cli struct {
	client  *api.Client
	manager *session.Manager
}

func (a *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signin":
		return a.signIn(ctx, args)
	case "signup":
		return a.signUp(ctx, args)
	case "signout":
		return a.signOut(ctx)
	case "whoami":
		return a.whoAmI()
	case "profile":
		return a.profile(ctx, args)
	case "avatar":
		return a.avatar(ctx, args)
	case "providers":
		return a.providers(ctx)
	case "agenda":
		return a.agenda(ctx, args)
	case "book":
		return a.book(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *cli) signIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	in := forms.SignInInput{Email: *email, Password: *password}
	if errs := forms.ValidateSignIn(in); errs != nil {
		return errs
	}
	if err := a.manager.SignIn(ctx, in.Email, in.Password); err != nil {
		return err
	}
	user, _ := a.manager.CurrentUser()
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *cli) signUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	in := forms.SignUpInput{Name: *name, Email: *email, Password: *password}
	if errs := forms.ValidateSignUp(in); errs != nil {
		return errs
	}
	user, err := a.client.CreateUser(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s. You can sign in now.\n", user.Email)
	return nil
}

func (a *cli) signOut(ctx context.Context) error {
	if err := a.manager.SignOut(ctx); err != nil {
		// Logout still happened in memory; only the cleanup failed.
		fmt.Fprintln(os.Stderr, "warning: could not remove persisted session:", err)
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *cli) whoAmI() error {
	user, ok := a.manager.CurrentUser()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if user.AvatarURL != "" {
		fmt.Println("avatar:", user.AvatarURL)
	}
	token := a.manager.CurrentToken()
	if exp, err := session.TokenExpiry(token); err == nil {
		if session.TokenExpired(token, time.Now()) {
			fmt.Println("session expired at", exp.Format(time.RFC1123), "- sign in again")
		} else {
			fmt.Println("session valid until", exp.Format(time.RFC1123))
		}
	}
	return nil
}

func (a *cli) profile(ctx context.Context, args []string) error {
	current, ok := a.manager.CurrentUser()
	if !ok {
		return errors.New("sign in first")
	}

	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", current.Name, "full name")
	email := fs.String("email", current.Email, "account e-mail")
	oldPassword := fs.String("old-password", "", "current password (required to change password)")
	password := fs.String("password", "", "new password")
	confirm := fs.String("confirm", "", "new password confirmation")
	fs.Parse(args)

	in := forms.ProfileInput{
		Name:                 *name,
		Email:                *email,
		OldPassword:          *oldPassword,
		Password:             *password,
		PasswordConfirmation: *confirm,
	}
	if errs := forms.ValidateProfile(in); errs != nil {
		return errs
	}

	user, err := a.client.UpdateProfile(ctx, in.ToUpdate())
	if err != nil {
		return err
	}
	a.manager.UpdateUser(*user)
	fmt.Println("Profile updated.")
	return nil
}

func (a *cli) avatar(ctx context.Context, args []string) error {
	if _, ok := a.manager.CurrentUser(); !ok {
		return errors.New("sign in first")
	}

	fs := flag.NewFlagSet("avatar", flag.ExitOnError)
	file := fs.String("file", "", "path to the image file")
	fs.Parse(args)
	if *file == "" {
		return errors.New("-file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	user, err := a.client.UpdateAvatar(ctx, filepath.Base(*file), f)
	if err != nil {
		return err
	}
	a.manager.UpdateUser(*user)
	fmt.Println("Avatar updated:", user.AvatarURL)
	return nil
}

func (a *cli) providers(ctx context.Context) error {
	providers, err := a.client.ListProviders(ctx)
	if err != nil {
		return err
	}
	for _, p := range providers {
		fmt.Printf("%s\t%s\n", p.ID, p.Name)
	}
	return nil
}

func (a *cli) agenda(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agenda", flag.ExitOnError)
	provider := fs.String("provider", "", "provider id")
	date := fs.String("date", "", "day to inspect (YYYY-MM-DD, defaults to the first bookable day)")
	fs.Parse(args)
	if *provider == "" {
		return errors.New("-provider is required")
	}

	day := agenda.MinimumDate(time.Now())
	if *date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
		day = parsed
	}

	items, err := a.client.DayAvailability(ctx, *provider, day.Year(), day.Month(), day.Day())
	if err != nil {
		return err
	}

	sections := agenda.Partition(items)
	printSection := func(title string, slots []agenda.Slot) {
		fmt.Println(title)
		for _, slot := range slots {
			marker := " "
			if !slot.Available {
				marker = "x"
			}
			fmt.Printf("  [%s] %s\n", marker, slot.Label)
		}
	}
	printSection("Morning", sections.Morning)
	printSection("Afternoon", sections.Afternoon)
	return nil
}

func (a *cli) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	provider := fs.String("provider", "", "provider id")
	date := fs.String("date", "", "day to book (YYYY-MM-DD)")
	hour := fs.Int("hour", -1, "hour of the day (0-23)")
	fs.Parse(args)
	if *provider == "" || *date == "" {
		return errors.New("-provider and -date are required")
	}

	var selection agenda.Selection
	if *hour >= 0 {
		selection.Choose(*hour)
	}
	chosenHour, chosen := selection.Hour()
	if !chosen {
		return errors.New("-hour is required")
	}

	day, err := time.ParseInLocation("2006-01-02", *date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid -date: %w", err)
	}

	appt, err := a.client.CreateAppointment(ctx, *provider, agenda.At(day, chosenHour))
	if err != nil {
		return err
	}
	fmt.Printf("Booked %s with %s (appointment %s)\n",
		appt.Date.Format("Mon, 02 Jan 2006 at 15:00"), appt.ProviderID, appt.ID)
	return nil
}
