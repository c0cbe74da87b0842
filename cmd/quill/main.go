package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/five82/quill/internal/app"
	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/state"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override UI preferences path (optional)")
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "":
		err = app.Run(ctx, opts)
	case "login":
		err = runLogin(ctx, opts, flag.Arg(1))
	case "logout":
		err = runLogout(ctx, opts)
	default:
		fmt.Fprintf(os.Stderr, "quill: unknown command %q\n", cmd)
		usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: quill [flags] [login [email] | logout]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Without a command quill opens the terminal UI.")
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

// runLogin prompts for credentials and stores the session token so the next
// TUI start is signed in.
func runLogin(ctx context.Context, opts app.Options, email string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "email: ",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return fmt.Errorf("init prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	email = strings.TrimSpace(email)
	if email == "" {
		line, err := rl.Readline()
		if err != nil {
			return promptError(err)
		}
		email = strings.TrimSpace(line)
	}

	password, err := rl.ReadPassword("password: ")
	if err != nil {
		return promptError(err)
	}

	env, err := app.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	user, err := env.Login(ctx, blogapi.Credentials{Email: email, Password: string(password)})
	if err != nil {
		if state.IsValidation(err) {
			return err
		}
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func runLogout(ctx context.Context, opts app.Options) error {
	env, err := app.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	if !env.Store.Snapshot().LoggedIn() {
		fmt.Println("Not logged in")
		return nil
	}
	env.Logout(ctx)
	fmt.Println("Logged out")
	return nil
}

func promptError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return errors.New("login cancelled")
	}
	return fmt.Errorf("read input: %w", err)
}
