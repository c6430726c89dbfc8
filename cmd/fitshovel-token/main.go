// Command fitshovel-token mints a broker auth token for the fitshovel
// daemon. Adapted from
// opensciencegrid-xrootd-monitoring-shoveler/cmd/createtoken/main.go, which
// uses flag.Parse where this one uses go-flags for its option parsing.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/ridgeway-telemetry/fitdecode/internal/fitshovel"
)

type options struct {
	Hours int    `short:"t" long:"hours" description:"Number of hours the token should be valid" default:"1"`
	Topic string `short:"T" long:"topic" description:"Broker topic to scope the token to" default:"fit-records"`
	Args  struct {
		PrivateKeyFile string `positional-arg-name:"private-key-file"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	pemBytes, err := os.ReadFile(opts.Args.PrivateKeyFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fitshovel-token: failed to read private key:", err)
		os.Exit(1)
	}

	token, err := fitshovel.MintToken(pemBytes, opts.Topic, opts.Hours)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fitshovel-token: failed to mint token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
