package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/dexmodel/dex"
)

type protoResult struct {
	Shorty    string   `yaml:"shorty"`
	Return    string   `yaml:"return"`
	Signature string   `yaml:"signature"`
	Params    []string `yaml:"params"`
}

func (r protoResult) fields() []kv {
	return []kv{
		{"shorty", r.Shorty},
		{"return", r.Return},
		{"params", strings.Join(r.Params, ", ")},
		{"signature", r.Signature},
	}
}

func newProtoCmd(a *app) *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "proto <shorty> <return> [param...]",
		Short: "Build a prototype and check the shorty against the full types",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.options()
			if noVerify {
				opts.VerifyPrototypes = false
			}
			p, err := dex.ParsePrototype(opts, args[0], args[1], args[2:]...)
			if err != nil {
				return err
			}
			types, _ := p.Parameters()
			params := make([]string, len(types))
			for i, t := range types {
				params[i] = t.String()
			}
			return a.print(cmd, protoResult{
				Shorty:    p.Shorty().String(),
				Return:    p.ReturnType().String(),
				Params:    params,
				Signature: p.String(),
			})
		},
	}
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip the shorty cross-check")
	return cmd
}
