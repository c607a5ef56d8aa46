package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	server  string
	session string
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "carsdb",
	Short: "Browse, rate and collect die-cast cars from the terminal",
	Long:  "carsdb talks to a CarsDB server. Sign in once; the session token is kept\nin a YAML file and reused by every other command.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.server, "server", envOr("CARSDB_URL", "http://localhost:8080"), "CarsDB server URL")
	f.StringVar(&rootFlags.session, "session", "", "Session file (default ~/.carsdb.yaml)")
	f.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log API calls to stderr")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(facetsCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(wishlistCmd)
	rootCmd.AddCommand(ownCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
