package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/dexmodel/config"
	"github.com/wippyai/dexmodel/dex"
)

var (
	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	treeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// app carries the state shared by every subcommand.
type app struct {
	log        *zap.Logger
	cfg        config.Config
	configPath string
	format     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "dexmodel",
		Short:         "Inspect DEX descriptors, access flags and encoded values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML configuration file")
	flags.StringVar(&a.format, "format", "text", "output format: text or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newTypeCmd(a))
	root.AddCommand(newShortyCmd(a))
	root.AddCommand(newProtoCmd(a))
	root.AddCommand(newFlagsCmd(a))
	root.AddCommand(newValueCmd(a))
	root.AddCommand(newAnnotationCmd(a))
	return root
}

func (a *app) setup() error {
	switch a.format {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown format %q", a.format)
	}

	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	l, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = l
	dex.SetLogger(l)
	return nil
}

func (a *app) options() dex.Options {
	return a.cfg.DecodeOptions()
}

// kv is one line of text output.
type kv struct {
	key   string
	value string
}

// result is what a subcommand prints. Text output lists fields and then
// any tree lines; yaml output marshals the result itself.
type result interface {
	fields() []kv
}

type treeResult interface {
	tree() []string
}

func (a *app) print(cmd *cobra.Command, r result) error {
	out := cmd.OutOrStdout()
	if a.format == "yaml" {
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	styled := isTerminal(out)
	for _, f := range r.fields() {
		key, value := f.key+":", f.value
		if styled {
			key, value = keyStyle.Render(key), valueStyle.Render(value)
		}
		if _, err := fmt.Fprintf(out, "%s %s\n", key, value); err != nil {
			return err
		}
	}
	if t, ok := r.(treeResult); ok {
		for _, line := range t.tree() {
			if styled {
				line = treeStyle.Render(line)
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// decodeHex accepts hex split across arguments, with an optional 0x prefix
// and embedded spaces.
func decodeHex(args []string) ([]byte, error) {
	s := strings.Join(args, "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.ReplaceAll(s, " ", "")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return data, nil
}
