package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hooksync/internal/gitrepo"
	"github.com/klauern/hooksync/internal/project"
	"github.com/klauern/hooksync/internal/ui"
)

// errGitDirRequired is returned when prepare ends without a .git directory.
var errGitDirRequired = errors.New("a .git directory is required to use hooksync")

func prepareCommand() *cli.Command {
	flags := append(projectFlags(),
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Answer yes to every question",
		},
		&cli.StringFlag{
			Name:  "git-binary",
			Usage: "Initialize repositories by running this git binary instead of the built-in implementation",
		},
	)

	return &cli.Command{
		Name:      "prepare",
		Usage:     "Prepare a project for hooksync",
		UsageText: "hooksync prepare [options]",
		Description: `Verify that the project has a .git directory and a hooks staging
   directory, offering to create whichever is missing.`,
		Flags:  flags,
		Action: runPrepare,
	}
}

func runPrepare(ctx context.Context, cmd *cli.Command) error {
	p, cfg, err := openProject(cmd)
	if err != nil {
		return err
	}
	if err := applyColorMode(cmd, cfg); err != nil {
		return err
	}

	var initializer gitrepo.Initializer = gitrepo.GoGitInitializer{}
	if binary := cmd.String("git-binary"); binary != "" {
		initializer = gitrepo.CommandInitializer{Binary: binary}
	}

	prep := &preparer{
		project:     p,
		initializer: initializer,
		prompter:    NewLinePrompter(os.Stdin, os.Stdout),
		assumeYes:   cmd.Bool("yes"),
	}
	if err := prep.verifyGitDirectory(ctx); err != nil {
		return err
	}
	return prep.verifyHooksDirectory(ctx)
}

// preparer runs the prepare checks against one project.
type preparer struct {
	project     *project.Project
	initializer gitrepo.Initializer
	prompter    *LinePrompter
	assumeYes   bool
}

func (p *preparer) confirm(ctx context.Context, question string) (bool, error) {
	if p.assumeYes {
		fmt.Printf("%s %s\n", question, ui.Dim("yes"))
		return true, nil
	}
	return p.prompter.Confirm(ctx, question, true)
}

func (p *preparer) verifyGitDirectory(ctx context.Context) error {
	fmt.Print("Verifying presence of a .git directory...")
	if gitrepo.HasGitDir(p.project.BaseDir()) {
		fmt.Println(ui.Success("OK"))
		return nil
	}
	fmt.Println()

	create, err := p.confirm(ctx, fmt.Sprintf("A .git directory was not found at %s. Would you like to create one?", p.project.BaseDir()))
	if err != nil {
		return err
	}
	if !create {
		fmt.Println(ui.StatusWarning("A .git directory is required to use hooksync."))
		fmt.Println("Run `git init` to initialize a repository.")
		return errGitDirRequired
	}

	if err := p.initializer.Init(ctx, p.project.BaseDir()); err != nil && !errors.Is(err, gitrepo.ErrAlreadyInitialized) {
		fmt.Println(ui.StatusError("Unable to create a .git directory"))
		return fmt.Errorf("unable to create a .git directory: %w", err)
	}
	fmt.Println(ui.StatusSuccess("A .git directory has been created!"))
	return nil
}

func (p *preparer) verifyHooksDirectory(ctx context.Context) error {
	dir := p.project.HooksDir()
	fmt.Printf("Verifying presence of a hooks directory at %s...", dir)

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		fmt.Println(ui.Success("OK"))
		return nil
	case err == nil:
		fmt.Println()
		return fmt.Errorf("%s exists but is not a directory", dir)
	case !errors.Is(err, fs.ErrNotExist):
		fmt.Println()
		return fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	fmt.Println()

	create, err := p.confirm(ctx, fmt.Sprintf("A hooks directory was not found at %s. Would you like to create one?", dir))
	if err != nil {
		return err
	}
	if !create {
		fmt.Println(ui.StatusWarning("Hooks to install are read from " + dir + "."))
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - hooks directory is committed with the project
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}
	fmt.Println(ui.StatusSuccess("A hooks directory has been created!"))
	return nil
}
