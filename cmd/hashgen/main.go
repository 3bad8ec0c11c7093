// Command hashgen generates a bcrypt password hash for seeding user rows.
//
// Usage: hashgen <password>
package main

import (
	"fmt"
	"log"
	"os"

	"authd/cmd/security/password"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <password>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := password.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	pw := os.Args[1]
	if err := cfg.Validate(pw); err != nil {
		log.Fatal(err)
	}

	hash, err := cfg.Hash(pw)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(hash)
}
