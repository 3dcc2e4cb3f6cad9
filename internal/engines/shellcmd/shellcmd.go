// Package shellcmd implements a user-templated extraction engine. The
// command template is tokenised with shell-style quoting and the
// placeholders {input}, {output}, {start} and {end} are substituted per
// token, so paths with spaces survive as single arguments.
package shellcmd

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/sammcj/pdfsection/internal/extract"
	"github.com/sirupsen/logrus"
)

// Engine runs a user-supplied command template.
type Engine struct {
	tokens []string
}

// New parses a command template such as
//
//	pdfjam {input} {start}-{end} -o {output}
//
// The template must reference {input} and {output} at least once.
func New(template string) (*Engine, error) {
	tokens, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("invalid engine command template: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("engine command template is empty")
	}

	joined := strings.Join(tokens, " ")
	for _, required := range []string{"{input}", "{output}"} {
		if !strings.Contains(joined, required) {
			return nil, fmt.Errorf("engine command template must contain %s", required)
		}
	}

	return &Engine{tokens: tokens}, nil
}

func (e *Engine) Name() string {
	return "custom"
}

// Available reports whether the template's command is on PATH.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.tokens[0])
	return err == nil
}

// Extract renders the template against the request and runs it.
func (e *Engine) Extract(ctx context.Context, logger *logrus.Logger, req extract.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}

	tmp := extract.TempOutputPath(req.OutputPath)
	argv := e.render(req, tmp)

	if err := extract.RunCommand(ctx, logger, argv[0], argv[1:]...); err != nil {
		return err
	}

	return extract.CommitOutput(tmp, req.OutputPath)
}

// render substitutes placeholders in every token. The output placeholder
// points at the temp path; the rename to the real output happens after the
// command succeeds.
func (e *Engine) render(req extract.Request, outputPath string) []string {
	replacer := strings.NewReplacer(
		"{input}", req.InputPath,
		"{output}", outputPath,
		"{start}", strconv.Itoa(req.StartPage),
		"{end}", strconv.Itoa(req.EndPage),
	)
	argv := make([]string, len(e.tokens))
	for i, tok := range e.tokens {
		argv[i] = replacer.Replace(tok)
	}
	return argv
}
