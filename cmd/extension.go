package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/savings/config"
)

// EnvConfigFile passes the -config flag to extensions. The other settings
// reach them through the SAVINGS_* environment variables they inherit.
const EnvConfigFile = config.EnvPrefix + "_CONFIG_FILE"

// RunExtension looks for a psav-<subcommand> binary in PATH and runs it with args.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) otherwise.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "psav-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	c := exec.Command(lp, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Env = append(os.Environ(),
		EnvConfigFile+"="+*configFile,
		config.EnvPrefix+"_FORCE_RELOAD="+strconv.FormatBool(*forceReload),
	)

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
