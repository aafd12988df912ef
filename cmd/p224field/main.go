// Command p224field evaluates P-224 base field operations from the command
// line.
package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "P224"

// The main command describes the tool and defaults to printing the help
// message.
var mainCmd = &cobra.Command{
	Use:          "p224field",
	Short:        "Arithmetic in the NIST P-224 base field",
	SilenceUsage: true,
}

func main() {
	// For environment variables.
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	addFlags(mainCmd.PersistentFlags())

	mainCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetBool("verbose"))
	}

	for _, c := range commands() {
		mainCmd.AddCommand(c)
	}

	// On failure Cobra prints the error string, so we only need to exit
	// with a non-0 status
	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}

// addFlags registers the global flags on flags and binds them to viper
func addFlags(flags *pflag.FlagSet) {
	flags.String("seed", "", "seed for the square root ladder; random when empty")
	flags.Int("base", 0, "base of the operands: 0 accepts a 0x prefix, otherwise 10 or 16")
	flags.Bool("hex", false, "print results in hexadecimal")
	flags.Bool("verbose", false, "enable debug logging")
	for _, name := range []string{"seed", "base", "hex", "verbose"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}
