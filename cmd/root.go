package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/flytaly/scrapmd/pkg/config"
	"github.com/flytaly/scrapmd/pkg/convert"
	"github.com/flytaly/scrapmd/pkg/document"
	"github.com/flytaly/scrapmd/pkg/log"
)

const (
	documentLocateFailed = "DOCUMENT_LOCATE_FAILED"
	documentLoadFailed   = "DOCUMENT_LOAD_FAILED"
)

// getConfig reads the config file if one is given and applies the flags
// that were set explicitly on top of it.
func getConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("ceiling") {
		cfg.Transform.Ceiling, _ = flags.GetInt("ceiling")
	}
	if flags.Changed("promote-single") {
		cfg.Transform.PromoteSingle, _ = flags.GetBool("promote-single")
	}
	if flags.Changed("indent") {
		cfg.Render.IndentUnit, _ = flags.GetString("indent")
	}
	if flags.Changed("html") {
		cfg.Output.HTML, _ = flags.GetBool("html")
	}
	if flags.Changed("tags") {
		cfg.Output.Tags, _ = flags.GetBool("tags")
	}
	if flags.Changed("write") {
		cfg.Output.Write, _ = flags.GetBool("write")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log") {
		cfg.Log.Path, _ = flags.GetString("log")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Log) (log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Format == "" || cfg.Format == "text" {
		return log.New(cfg.Path, level)
	}
	return log.NewStructured("scrapmd", cfg.Format, level)
}

func converterOptions(cfg config.Config) convert.Options {
	return convert.Options{
		Transform: cfg.Transform,
		Render:    cfg.Render,
		Tags:      cfg.Output.Tags,
		HTML:      cfg.Output.HTML,
	}
}

// target resolves the path argument: the first positional argument, then
// --path, then the working directory.
func target(cmd *cobra.Command, args []string) (string, error) {
	root := ""
	if len(args) > 0 {
		root = args[0]
	} else {
		root, _ = cmd.Flags().GetString("path")
	}
	if root == "" {
		var err error
		if root, err = os.Getwd(); err != nil {
			return "", err
		}
	}
	return filepath.Abs(root)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	root, err := target(cmd, args)
	if err != nil {
		return wrapLocateError(err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return wrapLocateError(err)
	}

	c := convert.New(converterOptions(cfg), convert.WithLogger(logger))

	if !info.IsDir() {
		return convertOne(cmd.OutOrStdout(), c, root, cfg.Output.Write)
	}

	fsys := os.DirFS(root)
	paths, err := document.FileList(fsys, ".")
	if err != nil {
		return wrapLocateError(err)
	}
	if len(paths) == 0 {
		logger.Warning("No documents found in %s", root)
		return nil
	}

	if err := c.ConvertFiles(cmd.Context(), fsys, root, paths, cfg.Workers); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.Green.Sprintf("Converted %d documents", len(paths)))
	return nil
}

// convertOne converts a single file, printing the output unless write is set
func convertOne(out io.Writer, c *convert.Converter, path string, write bool) error {
	dir, name := filepath.Split(path)
	fsys := os.DirFS(dir)

	if write {
		written, err := c.ConvertFile(fsys, dir, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, color.Green.Sprint(written))
		return nil
	}

	doc, err := document.Load(fsys, name)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "couldn't load document").
			WithTextCode(documentLoadFailed)
	}
	data, err := c.ConvertDocument(doc)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func wrapLocateError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	message := "couldn't locate documents"
	if errors.Is(err, os.ErrNotExist) {
		message = "path does not exist"
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(documentLocateFailed)
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scrapmd [path]",
		Short: "Convert wiki-style notes to Markdown",
		Long: `Convert wiki-style notes to Markdown

Pass a document to print its Markdown, or a directory to convert every
document in it. Converted files are written next to their sources as
<name>.md. Use 'watch' command to reconvert documents when they change.
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("path", "p", "", "path to a document or directory (default is the working directory)")
	flags.StringP("config", "c", "", "path to a YAML config file")
	flags.Int("ceiling", 3, "heading level ceiling for promoted decorations")
	flags.Bool("promote-single", false, "promote decorations with a single '*'")
	flags.String("indent", "   ", "indent unit for nested list items")
	flags.Bool("html", false, "write HTML instead of Markdown")
	flags.Bool("tags", false, "add hashtags to the front matter")
	flags.Int("workers", 4, "number of documents converted at a time")
	flags.StringP("log", "l", "", "path to the log file (text format only)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, console, json, pretty)")

	rootCmd.Flags().BoolP("write", "w", false, "write a single document next to its source instead of printing it")

	rootCmd.AddCommand(newWatchCmd(), newTreeCmd())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute(version string) {
	rootCmd := NewRootCmd()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprint("Error: "), err)
		os.Exit(1)
	}
}
