// Command uimangle flattens Hytale .ui macro files into canonical UI
// source and generates companion Java accessor classes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "uimangle",
		Short: "Flatten Hytale .ui macros and generate Java companion classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			generated, err := Run(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "done: %d file(s)\n", generated)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ResourcesRoot, "resources-root", "", "root directory of the game's resource tree (required)")
	flags.StringVar(&cfg.UIRoot, "ui-root", "", "root directory of .ui source files (required)")
	flags.StringVar(&cfg.UIOut, "ui-out", "", "output directory for expanded .ui files (required)")
	flags.StringVar(&cfg.JavaOut, "java-out", "", "output directory for generated Java sources (required)")
	flags.StringVar(&cfg.JavaPackage, "java-package", defaultJavaPackage, "Java package for generated companion classes")
	flags.StringVar(&cfg.JavaRoot, "java-root", "", "Java source root to scan for .ui path references")
	flags.StringVar(&cfg.LangRoot, "lang-root", "", "root directory of .lang translation files")
	flags.StringVar(&cfg.LangClassFile, "lang-class-file", "", ".lang file whose companion class name is overridden")
	flags.StringVar(&cfg.LangClassName, "lang-class-name", "", "companion class name for --lang-class-file")
	flags.BoolVar(&cfg.IncludeMacroOnly, "include-macro-only", false, "unused, kept for command-line compatibility")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "print progress to stderr")
	flags.BoolVar(&cfg.WarnDuplicateProperties, "warn-duplicate-properties", false, "warn on duplicate properties within a node")

	for _, name := range []string{"resources-root", "ui-root", "ui-out", "java-out"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
