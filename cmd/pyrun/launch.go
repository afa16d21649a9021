package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chainguard-dev/clog"

	"pyrun/internal/interp"
	"pyrun/internal/pyargs"
	"pyrun/internal/pyversion"
	"pyrun/internal/rewrite"
	"pyrun/internal/script"
)

var errMissingScript = errors.New("you need to pass a python script for this to work")

// launcher wires the pipeline's collaborators so tests can substitute
// them.
type launcher struct {
	provision func(ctx context.Context, v interp.Version) (string, string, error)
	rewrite   func(src string, opts rewrite.Options) (string, error)
	interp    interp.Interpreter

	// tempDir is where rewritten scripts land; "" means the OS default.
	tempDir string
}

// launch runs the whole pipeline: find the script in the interpreter's
// argument tail, rewrite it into a temp file, substitute the temp path
// into the argument vector, provision an interpreter and invoke it. The
// returned int is the interpreter's own exit code.
func (l *launcher) launch(ctx context.Context, args []string, version interp.Version, versionFixed bool) (int, error) {
	log := clog.FromContext(ctx)

	scriptPath, err := pyargs.ScriptPath(args)
	if err != nil {
		return 1, fmt.Errorf("parsing python command line: %w", err)
	}
	if scriptPath == "" {
		return 1, errMissingScript
	}

	src, err := os.ReadFile(scriptPath)
	if err != nil {
		return 1, fmt.Errorf("reading script: %w", err)
	}

	if !versionFixed {
		meta, err := script.Parse(bytes.NewReader(src))
		if err != nil {
			log.Warn("ignoring malformed script metadata", "err", err)
		} else if meta != nil {
			if v, ok := pyversion.FromRequires(meta.RequiresPython); ok {
				log.Debug("script pins python version", "requires", meta.RequiresPython, "version", v)
				version = v
			}
		}
	}

	launcherPath, home, err := l.provision(ctx, version)
	if err != nil {
		return 1, fmt.Errorf("provisioning python %s: %w", version, err)
	}

	rewritten, err := l.rewrite(string(src), rewrite.Options{})
	if err != nil {
		return 1, err
	}

	tmpPath, err := writeTempScript(l.tempDir, rewritten)
	if err != nil {
		return 1, err
	}
	defer os.Remove(tmpPath)

	argv := substituteScript(args, scriptPath, tmpPath)
	argv = append([]string{launcherPath}, argv...)

	log.Debug("running python", "argv", argv, "home", home)
	return l.interp.Run(ctx, interp.RunOptions{
		Home:     home,
		Version:  version,
		Launcher: launcherPath,
		Argv:     argv,
	})
}

// writeTempScript stores the rewritten source in a uniquely named temp
// file and returns its path.
func writeTempScript(dir, content string) (string, error) {
	tmpFile, err := os.CreateTemp(dir, "pyrun-*.py")
	if err != nil {
		return "", fmt.Errorf("creating temp script: %w", err)
	}
	path := tmpFile.Name()
	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing temp script: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing temp script: %w", err)
	}
	return path, nil
}

// substituteScript replaces every argument exactly equal to script with
// replacement, preserving order and count. An unrelated argument that
// happens to equal the script path is rewritten too; the command line
// gives us nothing to tell them apart with.
func substituteScript(args []string, script, replacement string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == script {
			out[i] = replacement
		} else {
			out[i] = arg
		}
	}
	return out
}
