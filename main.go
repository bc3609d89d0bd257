// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"gotox/internal/config"
	"gotox/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	cfg, path, err := config.Find(".")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the gotox REPL, %s!\n", currentUser.Username)
	if path != "" {
		fmt.Printf("Using settings from %s\n", path)
	}
	fmt.Println("Type :help for the list of commands.")
	repl.NewSession(cfg, os.Stdout).Run(os.Stdin)
}
