// Command cli is a small terminal client for the DevConnect API: register,
// log in, and show the current identity, persisting the session token the
// way the web client persists it in local storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/client"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "API base URL")
	tokenPath := flag.String("token-file", "", "token file path (default ~/.devconnect/token)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	store, err := client.NewFileTokenStore(*tokenPath)
	if err != nil {
		log.Fatalf("token store: %v", err)
	}

	c, err := client.New(*baseURL, store)
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	ctx := context.Background()

	switch args[0] {
	case "register":
		if len(args) != 4 {
			log.Fatal("usage: register <name> <email> <password>")
		}
		if err := c.Register(ctx, args[1], args[2], args[3]); err != nil {
			log.Fatalf("register: %v", err)
		}
		fmt.Println("registered and logged in as", args[2])

	case "login":
		if len(args) != 3 {
			log.Fatal("usage: login <email> <password>")
		}
		if err := c.Login(ctx, args[1], args[2]); err != nil {
			log.Fatalf("login: %v", err)
		}
		fmt.Println("logged in as", args[1])

	case "whoami":
		if err := c.LoadUser(ctx); err != nil {
			log.Fatalf("whoami: %v", err)
		}
		state := c.State()
		if state.IsAuthenticated == nil || !*state.IsAuthenticated {
			fmt.Println("not logged in")
			os.Exit(1)
		}
		fmt.Printf("%s <%s>\n", state.User.Name, state.User.Email)

	case "logout":
		if err := store.Clear(); err != nil {
			log.Fatalf("logout: %v", err)
		}
		fmt.Println("logged out")

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cli [-server URL] [-token-file PATH] <register|login|whoami|logout> [args]")
}
