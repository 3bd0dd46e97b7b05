package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wippyai/dexmodel/dex"
)

type flagsResult struct {
	Raw   string `yaml:"raw"`
	Owner string `yaml:"owner,omitempty"`
	Flags string `yaml:"flags"`
	All   string `yaml:"all"`
	Valid *bool  `yaml:"valid,omitempty"`
}

func (r flagsResult) fields() []kv {
	out := []kv{{"raw", r.Raw}}
	if r.Owner != "" {
		out = append(out, kv{"owner", r.Owner}, kv{"flags", r.Flags})
	}
	out = append(out, kv{"all", r.All})
	if r.Valid != nil {
		out = append(out, kv{"valid", strconv.FormatBool(*r.Valid)})
	}
	return out
}

func parseOwner(s string) (dex.Owner, bool, error) {
	switch s {
	case "":
		return 0, false, nil
	case "class":
		return dex.OwnerClass, true, nil
	case "field":
		return dex.OwnerField, true, nil
	case "method":
		return dex.OwnerMethod, true, nil
	default:
		return 0, false, fmt.Errorf("unknown owner %q (want class, field or method)", s)
	}
}

func newFlagsCmd(a *app) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "flags <access_flags>",
		Short: "Render access flags, optionally for a class, field or method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return fmt.Errorf("parse flags: %w", err)
			}
			o, ok, err := parseOwner(owner)
			if err != nil {
				return err
			}
			f := dex.AccessFlags(raw)
			r := flagsResult{
				Raw: fmt.Sprintf("0x%08x", uint32(f)),
				All: f.String(),
			}
			if ok {
				valid := f.Valid(o)
				r.Owner = o.String()
				r.Flags = f.Format(o)
				r.Valid = &valid
			}
			return a.print(cmd, r)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner kind: class, field or method")
	return cmd
}
