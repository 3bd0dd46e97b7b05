package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/dexmodel/dex"
)

type typeResult struct {
	Descriptor string `yaml:"descriptor"`
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name"`
	Element    string `yaml:"element,omitempty"`
	Shorty     string `yaml:"shorty"`
	Dimensions int    `yaml:"dimensions,omitempty"`
}

func (r typeResult) fields() []kv {
	out := []kv{
		{"descriptor", r.Descriptor},
		{"kind", r.Kind},
		{"name", r.Name},
	}
	if r.Dimensions > 0 {
		out = append(out,
			kv{"dimensions", strconv.Itoa(r.Dimensions)},
			kv{"element", r.Element})
	}
	return append(out, kv{"shorty", r.Shorty})
}

func newTypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "type <descriptor>",
		Short: "Parse a type descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := dex.ParseType(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("parsed type",
				zap.String("descriptor", args[0]),
				zap.Stringer("kind", t.Kind()))

			r := typeResult{
				Descriptor: t.Descriptor(),
				Kind:       t.Kind().String(),
				Name:       t.String(),
				Shorty:     dex.ShortyOf(t).String(),
				Dimensions: t.Dimensions(),
			}
			if t.Dimensions() > 0 {
				r.Element = t.Element().String()
			}
			return a.print(cmd, r)
		},
	}
}
