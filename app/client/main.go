package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"nasa-mission-control/app/client/api"
	"nasa-mission-control/app/client/authstate"
	"nasa-mission-control/app/client/inits"
	"nasa-mission-control/app/client/storage"
)

const usage = `usage: mission-control <command>

commands:
  login <email>   log in and store the session token
  logout          drop the stored session token
  whoami          show the current session's profile
  missions        list missions
  projects        list projects
`

func main() {
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := inits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	client := api.New(cfg.ServerEndpoint)
	manager := authstate.New(client, storage.NewFileStore(cfg.TokenFile), l)

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(2)
		}
		email := os.Args[2]

		fmt.Print("password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatal(fmt.Errorf("error reading password: %w", err))
		}

		state, err := manager.Login(ctx, email, string(password))
		if err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %s\n", state.Err)
			os.Exit(1)
		}
		fmt.Printf("logged in as %s (%s)\n", state.User.Email, state.User.Role)

	case "logout":
		manager.Logout()
		fmt.Println("logged out")

	case "whoami":
		state := manager.Init(ctx)
		switch state.Status {
		case authstate.StatusAuthenticated:
			fmt.Printf("%s <%s> role=%s\n", state.User.Name, state.User.Email, state.User.Role)
		case authstate.StatusError:
			fmt.Fprintf(os.Stderr, "error: %s\n", state.Err)
			os.Exit(1)
		default:
			fmt.Println("not logged in")
		}

	case "missions":
		missions, err := client.Missions(ctx)
		if err != nil {
			log.Fatal(fmt.Errorf("error listing missions: %w", err))
		}
		for _, m := range missions {
			fmt.Printf("#%d %s [%s] %s", m.ID, m.Title, m.Status, m.LaunchDate.Format("2006-01-02"))
			if len(m.Crew) > 0 {
				fmt.Printf(" crew: %s", strings.Join(m.Crew, ", "))
			}
			fmt.Println()
		}

	case "projects":
		projects, err := client.Projects(ctx)
		if err != nil {
			log.Fatal(fmt.Errorf("error listing projects: %w", err))
		}
		for _, p := range projects {
			fmt.Printf("#%d %s [%s] %s\n", p.ID, p.Title, p.Status, p.StartDate.Format("2006-01-02"))
		}

	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}
