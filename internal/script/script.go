// Package script extracts the PEP 723 inline metadata block from a
// python script.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Metadata is the decoded payload of a `# /// script` block.
type Metadata struct {
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
}

// Parse scans r for a PEP 723 metadata block and decodes its TOML
// payload. Scripts without a block yield (nil, nil).
func Parse(r io.Reader) (*Metadata, error) {
	scanner := bufio.NewScanner(r)
	var inBlock bool
	var tomlLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if !inBlock {
			if strings.TrimRight(line, " \t") == "# /// script" {
				inBlock = true
			}
			continue
		}

		if strings.TrimRight(line, " \t") == "# ///" {
			return parseBlock(strings.Join(tomlLines, "\n"))
		}

		// Block lines carry a "# " prefix; a bare "#" marks an empty
		// line.
		switch {
		case strings.HasPrefix(line, "# "):
			tomlLines = append(tomlLines, line[2:])
		case strings.HasPrefix(line, "#"):
			tomlLines = append(tomlLines, line[1:])
		default:
			return nil, fmt.Errorf("metadata block interrupted by non-comment line %q", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	if inBlock {
		return nil, fmt.Errorf("unterminated metadata block")
	}
	return nil, nil
}

func parseBlock(content string) (*Metadata, error) {
	var m Metadata
	if err := toml.Unmarshal([]byte(content), &m); err != nil {
		return nil, fmt.Errorf("unmarshaling metadata block: %w", err)
	}
	return &m, nil
}
