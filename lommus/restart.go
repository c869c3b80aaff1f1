package lommus

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/lmittmann/tint"
)

// spawnProcess starts a detached copy of the given executable with the
// given arguments, stdio connected to this process's streams so console
// output is continuous across the restart. A package var so tests can
// swap it out.
var spawnProcess = func(name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd.Start()
}

// exitProcess terminates the current process. Swappable for tests.
var exitProcess = func(code int) {
	os.Exit(code)
}

// restart spawns a new process image with the same executable and argument
// vector, then exits with code 0. There is no handshake: the new process
// re-runs bootstrap from scratch and all in-memory state (the module
// registry, the runtime config) is lost.
func (b *Bot) restart() error {
	if err := spawnProcess(os.Args[0], os.Args[1:]); err != nil {
		b.logger.Error("error spawning replacement process", tint.Err(err))
		return err
	}
	b.logger.Warn("replacement process started, exiting")
	exitProcess(0)
	return nil
}
