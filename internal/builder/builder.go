package builder

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/forgekit/forge/internal/models"
	"github.com/sirupsen/logrus"
)

// Runner constructs the command line for one platform build tool
type Runner interface {
	// Commands returns the process invocations for a build, in order
	Commands(build *models.Build, cfg *models.ClientConfig, srcDir, buildDir string) ([]Command, error)

	// Tool returns the tool name this runner handles
	Tool() string
}

// Command is a single process invocation inside a build
type Command struct {
	Name string
	Args []string
	Dir  string
}

// runners maps recipe tool names to their runners
var runners = map[string]Runner{}

func init() {
	for _, r := range []Runner{&MSBuildRunner{}, &CMakeRunner{}, &MakeRunner{}} {
		runners[r.Tool()] = r
	}
}

// For returns the runner for a recipe's build tool
func For(tool string) (Runner, error) {
	r, ok := runners[tool]
	if !ok {
		return nil, &models.ForgeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown build tool %q", tool),
		}
	}
	return r, nil
}

// Run executes a recipe's build stage: resolves the runner, constructs
// the tool invocations and runs them with output streamed through the
// logger. The first failing invocation aborts the build.
func Run(ctx context.Context, build *models.Build, cfg *models.ClientConfig, srcDir, buildDir string) error {
	if build == nil {
		return &models.ForgeError{
			Type: models.ErrBuild,
			Err:  fmt.Errorf("recipe has no build block"),
		}
	}

	runner, err := For(build.Tool)
	if err != nil {
		return err
	}

	cmds, err := runner.Commands(build, cfg, srcDir, buildDir)
	if err != nil {
		return err
	}

	for _, c := range cmds {
		logrus.Infof("Running %s %v", c.Name, c.Args)
		if err := execute(ctx, c); err != nil {
			return &models.ForgeError{
				Type: models.ErrBuild,
				Err:  fmt.Errorf("%s: %w", build.Tool, err),
			}
		}
	}

	return nil
}

func execute(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	out := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	defer out.Close()
	cmd.Stdout = out
	cmd.Stderr = out

	return cmd.Run()
}
