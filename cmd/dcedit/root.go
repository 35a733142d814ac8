package main

import (
	"fmt"
	"os"

	"dcedit/internal/config"
	"dcedit/internal/dircolors"
	"dcedit/internal/errors"
	"dcedit/internal/log"
	"dcedit/internal/preview"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// app holds state shared by every subcommand
type app struct {
	cfgFile string
	file    string
	debug   bool
	cfg     *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dcedit",
		Short:   "Edit dircolors color configuration",
		Long:    `dcedit reads, edits and previews .dircolors files: the key to color mappings ls uses to colorize directory listings.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Configure(log.WithOutput(cmd.ErrOrStderr()))
			log.SetDebug(a.debug)

			var configErr error
			if a.cfgFile != "" {
				a.cfg, configErr = config.LoadConfigFile(a.cfgFile)
			} else {
				a.cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), warningText(fmt.Sprintf("Warning: %v", configErr)))
				fmt.Fprintln(cmd.ErrOrStderr(), mutedText("Using default settings."))
				a.cfg = config.New()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/dcedit/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.file, "file", "f", "", "dircolors file to edit (default is $HOME/.dircolors)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		a.showCmd(),
		a.getCmd(),
		a.setCmd(),
		a.rmCmd(),
		a.moveCmd(),
		a.categoriesCmd(),
		a.schemeCmd(),
		decodeCmd(),
		a.encodeCmd(),
		validateCmd(),
		paletteCmd(),
		a.previewCmd(),
		a.watchCmd(),
		defaultsCmd(),
	)

	return rootCmd
}

// path returns the dircolors file selected by flag or config
func (a *app) path() (string, error) {
	if a.file != "" {
		return config.ExpandHome(a.file)
	}
	return a.cfg.DircolorsPath()
}

// load parses the dircolors file, prints parse warnings and applies the
// configured category rules
func (a *app) load(cmd *cobra.Command) (*dircolors.Document, string, error) {
	path, err := a.path()
	if err != nil {
		return nil, "", err
	}
	doc, warnings, err := dircolors.ParseFile(path)
	if err != nil {
		return nil, path, err
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warningText(fmt.Sprintf("%s: %s", path, w.Error())))
	}
	if _, err := doc.ClassifyUncategorized(a.cfg.Categories.Rules); err != nil {
		return nil, path, err
	}
	return doc, path, nil
}

// loadOrNew is load, starting from an empty document when the file does
// not exist yet
func (a *app) loadOrNew(cmd *cobra.Command) (*dircolors.Document, string, error) {
	doc, path, err := a.load(cmd)
	if err != nil && errors.IsFileNotFound(err) {
		return dircolors.New(), path, nil
	}
	return doc, path, err
}

// save writes doc to path, keeping a .bak copy first when configured
func (a *app) save(doc *dircolors.Document, path string) error {
	if a.cfg.Editor.Backup {
		if err := backup(path); err != nil {
			return err
		}
	}
	return dircolors.WriteFile(doc, path)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewFileError("cannot read file for backup", path, errors.FileReadFailed, err)
	}
	bak := path + ".bak"
	if err := os.WriteFile(bak, data, 0644); err != nil {
		return errors.NewFileError("cannot write backup", bak, errors.FileWriteFailed, err)
	}
	log.LogWithFields(log.F("path", bak)).Debug("wrote backup")
	return nil
}

// previewOptions builds preview options from config for the current terminal
func (a *app) previewOptions() preview.Options {
	return preview.Options{
		Header:     a.cfg.Preview.Header,
		Background: a.cfg.Preview.Background,
		Profile:    termenv.EnvColorProfile(),
	}
}
