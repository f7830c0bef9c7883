package commands

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initForce bool

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a funcmeta.yml configuration file",
		Long:  "Interactively create a funcmeta.yml in the current directory with extraction, catalog, and server settings.",
		RunE:  runInit,
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing funcmeta.yml")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	const configFile = "funcmeta.yml"

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFile)
	}

	answers := struct {
		ProjectName string
		Output      string
		CatalogPath string
		Port        int
	}{}

	questions := []*survey.Question{
		{
			Name:     "projectName",
			Prompt:   &survey.Input{Message: "Project name:"},
			Validate: survey.Required,
		},
		{
			Name:   "output",
			Prompt: &survey.Input{Message: "JSON output path:", Default: "function_metadata.json"},
		},
		{
			Name:   "catalogPath",
			Prompt: &survey.Input{Message: "Catalog database path:", Default: "funcmeta.db"},
		},
		{
			Name:   "port",
			Prompt: &survey.Input{Message: "Metadata server port:", Default: "7430"},
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	content := fmt.Sprintf(`project_name: %s

extract:
  output: %s
  workers: 0

catalog:
  path: %s

server:
  host: localhost
  port: %d
`, answers.ProjectName, answers.Output, answers.CatalogPath, answers.Port)

	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFile, err)
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Printf("Created %s\n", configFile)
	return nil
}
