package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/dexmodel/dex"
)

type shortyResult struct {
	Shorty string   `yaml:"shorty"`
	Return string   `yaml:"return"`
	Params []string `yaml:"params"`
}

func (r shortyResult) fields() []kv {
	return []kv{
		{"shorty", r.Shorty},
		{"return", r.Return},
		{"params", strings.Join(r.Params, " ")},
	}
}

func newShortyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shorty <shorty>",
		Short: "Parse a shorty descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dex.ParseShorty(args[0])
			if err != nil {
				return err
			}
			params := make([]string, len(d.Params()))
			for i, p := range d.Params() {
				params[i] = p.String()
			}
			return a.print(cmd, shortyResult{
				Shorty: d.String(),
				Return: d.Return().String(),
				Params: params,
			})
		},
	}
}
