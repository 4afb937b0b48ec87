package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pocket-auth/internal/client"

	"go.uber.org/zap"
)

// authcli ejercita el SDK de sesión contra una instancia del servicio:
// register, login, whoami y logout.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	api := client.NewAPIClient(baseURL)
	session := client.NewSession(api, client.NewDefaultStorage(), logger)
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, api, os.Args[2:])
	case "login":
		err = runLogin(ctx, session, os.Args[2:])
	case "whoami":
		err = runWhoami(ctx, session)
	case "logout":
		err = session.SignOut(ctx)
		if err == nil {
			fmt.Println("signed out")
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if apiErr, ok := client.IsAPIError(err); ok {
			fmt.Fprintf(os.Stderr, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runRegister(ctx context.Context, api *client.APIClient, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 characters)")
	name := fs.String("name", "", "display name (optional)")
	fs.Parse(args)

	user, err := api.Register(ctx, *email, *password, *name)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", user.Email, user.ID)
	return nil
}

func runLogin(ctx context.Context, session *client.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := session.SignIn(ctx, *email, *password); err != nil {
		return err
	}
	user, _ := session.User()
	fmt.Printf("logged in as %s\n", user.Email)
	return nil
}

func runWhoami(ctx context.Context, session *client.Session) error {
	session.Boot(ctx)
	user, ok := session.User()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authcli <register|login|whoami|logout> [flags]")
}
