// Command hash-generator prints Argon2id PHC hashes for the given passwords,
// or checks a password against an existing hash. It is meant for seeding
// fixtures and debugging stored credentials.
//
//	hash-generator [-memory KiB] [-iterations n] [-parallelism n] password...
//	hash-generator -verify '$argon2id$v=19$...' password
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/account-api/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := domain.DefaultArgon2Params()

	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	memory := fs.Uint("memory", uint(defaults.Memory), "memory cost in KiB")
	iterations := fs.Uint("iterations", uint(defaults.Iterations), "number of passes")
	parallelism := fs.Uint("parallelism", uint(defaults.Parallelism), "degree of parallelism")
	verify := fs.String("verify", "", "PHC hash to verify the password against")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	passwords := fs.Args()
	if len(passwords) == 0 {
		fmt.Fprintln(stderr, "usage: hash-generator [flags] password...")
		return 2
	}

	if *verify != "" {
		if len(passwords) != 1 {
			fmt.Fprintln(stderr, "-verify takes exactly one password")
			return 2
		}
		hash := domain.PasswordFromHash(*verify)
		if !hash.IsWellFormed() {
			fmt.Fprintln(stderr, "hash is not a well-formed argon2id PHC string")
			return 1
		}
		if !hash.Verify(passwords[0]) {
			fmt.Fprintln(stdout, "mismatch")
			return 1
		}
		fmt.Fprintln(stdout, "match")
		return 0
	}

	if *parallelism > 255 {
		fmt.Fprintln(stderr, "parallelism must be at most 255")
		return 2
	}
	params := defaults
	params.Memory = uint32(*memory)
	params.Iterations = uint32(*iterations)
	params.Parallelism = uint8(*parallelism)

	status := 0
	for _, plain := range passwords {
		hash, err := domain.NewPasswordWithParams(plain, params)
		if err != nil {
			fmt.Fprintf(stderr, "Error generating hash: %v\n", err)
			status = 1
			continue
		}
		fmt.Fprintln(stdout, hash.Hash())
	}
	return status
}
