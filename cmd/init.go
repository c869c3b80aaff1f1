package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const exampleModuleFilename = "greeter.go"

// exampleModuleSource is written into the module directory by `lommus init`
// as a working starting point for feature modules.
const exampleModuleSource = `package module

import (
	"github.com/AW1534/lommus/modapi"
)

// greeter is a minimal feature module. Files in this directory ending in
// the configured suffix are loaded after the bot authenticates; a file
// without a conforming New constructor is treated as a utility file.
type greeter struct {
	client modapi.Client
}

func (g *greeter) Name() string { return "greeter" }

func (g *greeter) Init(c modapi.Client) error {
	g.client = c
	c.Logger().Info("greeter initialized")
	return nil
}

func New() modapi.Module { return &greeter{} }
`

const starterEnv = `# lommus configuration. All settings can also be set as
# environment variables with the LOM_ prefix.
LOM_DISCORD_TOKEN=
LOM_DISCORD_APPLICATION_ID=
LOM_DISCORD_GUILD_ID=
#LOM_MODULES_DIR=modules
#LOM_LOG_LEVEL=INFO
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the module directory and a starter .env file",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		if err := os.MkdirAll(cfg.Modules.Dir, 0o755); err != nil {
			log.Fatalf("Error creating module directory: %v", err)
		}

		modulePath := filepath.Join(cfg.Modules.Dir, exampleModuleFilename)
		if _, err := os.Stat(modulePath); os.IsNotExist(err) {
			if err := os.WriteFile(
				modulePath,
				[]byte(exampleModuleSource),
				0o644,
			); err != nil {
				log.Fatalf("Error writing example module: %v", err)
			}
			fmt.Fprintf(out, "Wrote example module to %s\n", modulePath)
		} else {
			fmt.Fprintf(out, "%s already exists, leaving it alone\n", modulePath)
		}

		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			if err := os.WriteFile(".env", []byte(starterEnv), 0o600); err != nil {
				log.Fatalf("Error writing .env: %v", err)
			}
			fmt.Fprintln(out, "Wrote starter .env")
		} else {
			fmt.Fprintln(out, ".env already exists, leaving it alone")
		}

		fmt.Fprintln(
			out,
			"Initialization complete. Set your discord token in .env, then "+
				"start the bot with the 'run' subcommand.",
		)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
