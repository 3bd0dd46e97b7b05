package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/dexmodel/dex"
)

// valueNode is the yaml form of an encoded value.
type valueNode struct {
	Type     string      `yaml:"type"`
	Value    string      `yaml:"value,omitempty"`
	Name     *uint32     `yaml:"name,omitempty"`
	Elements []valueNode `yaml:"elements,omitempty"`
}

func toNode(v dex.Value) valueNode {
	n := valueNode{Type: v.Type().String(), Value: formatValue(v)}
	switch v.Type() {
	case dex.ValueArray:
		for _, e := range v.Array().Values() {
			n.Elements = append(n.Elements, toNode(e))
		}
	case dex.ValueAnnotation:
		for _, e := range v.Annotation().Elements() {
			name := e.NameIndex()
			child := toNode(e.Value())
			child.Name = &name
			n.Elements = append(n.Elements, child)
		}
	}
	return n
}

// formatValue renders a single value without its children.
func formatValue(v dex.Value) string {
	switch v.Type() {
	case dex.ValueByte, dex.ValueShort, dex.ValueInt, dex.ValueLong:
		return strconv.FormatInt(v.Int(), 10)
	case dex.ValueChar:
		return strconv.QuoteRune(rune(v.Int()))
	case dex.ValueFloat:
		return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
	case dex.ValueDouble:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case dex.ValueBoolean:
		return strconv.FormatBool(v.Bool())
	case dex.ValueNull:
		return "null"
	case dex.ValueArray:
		return fmt.Sprintf("%d elements", v.Array().Len())
	case dex.ValueAnnotation:
		a := v.Annotation()
		return fmt.Sprintf("type#%d, %d elements", a.TypeIndex(), len(a.Elements()))
	default:
		return "#" + strconv.FormatUint(uint64(v.Index()), 10)
	}
}

func walkLines(v dex.Value) []string {
	var lines []string
	_ = dex.Walk(v, func(depth int, v dex.Value) error {
		lines = append(lines, strings.Repeat("  ", depth)+v.Type().String()+" "+formatValue(v))
		return nil
	})
	return lines
}

type valueResult struct {
	Encoded string    `yaml:"encoded"`
	Value   valueNode `yaml:"value"`
	Depth   int       `yaml:"depth"`
	Input   int       `yaml:"input"`

	root dex.Value
}

func (r valueResult) fields() []kv {
	return []kv{
		{"encoded", r.Encoded},
		{"input", strconv.Itoa(r.Input)},
		{"depth", strconv.Itoa(r.Depth)},
	}
}

func (r valueResult) tree() []string { return walkLines(r.root) }

func newValueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "value <hex>",
		Short: "Decode an encoded_value and show its minimal re-encoding",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex(args)
			if err != nil {
				return err
			}
			v, err := dex.NewDecoder(a.options()).DecodeValue(data)
			if err != nil {
				return err
			}
			enc := dex.EncodeValue(v)
			a.log.Debug("decoded value",
				zap.Stringer("type", v.Type()),
				zap.Int("input", len(data)),
				zap.Int("encoded", len(enc)))

			return a.print(cmd, valueResult{
				Encoded: hex.EncodeToString(enc),
				Value:   toNode(v),
				Depth:   dex.Depth(v),
				Input:   len(data),
				root:    v,
			})
		},
	}
}

type annotationResult struct {
	Visibility string      `yaml:"visibility,omitempty"`
	Elements   []valueNode `yaml:"elements"`
	Type       uint32      `yaml:"type"`

	annotation *dex.EncodedAnnotation
}

func (r annotationResult) fields() []kv {
	out := []kv{{"type", "#" + strconv.FormatUint(uint64(r.Type), 10)}}
	if r.Visibility != "" {
		out = append(out, kv{"visibility", r.Visibility})
	}
	return append(out, kv{"elements", strconv.Itoa(len(r.Elements))})
}

func (r annotationResult) tree() []string {
	var lines []string
	for _, e := range r.annotation.Elements() {
		sub := walkLines(e.Value())
		lines = append(lines, fmt.Sprintf("#%d = %s", e.NameIndex(), sub[0]))
		for _, l := range sub[1:] {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}

func newAnnotationCmd(a *app) *cobra.Command {
	var item bool

	cmd := &cobra.Command{
		Use:   "annotation <hex>",
		Short: "Decode an encoded_annotation, or an annotation_item with --item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex(args)
			if err != nil {
				return err
			}
			d := dex.NewDecoder(a.options())

			var r annotationResult
			if item {
				it, err := d.DecodeAnnotationItem(data)
				if err != nil {
					return err
				}
				r.Visibility = it.Visibility().String()
				r.annotation = it.EncodedAnnotation
			} else {
				if r.annotation, err = d.DecodeAnnotation(data); err != nil {
					return err
				}
			}
			r.Type = r.annotation.TypeIndex()
			r.Elements = toNode(dex.AnnotationValue(r.annotation)).Elements
			if r.Elements == nil {
				r.Elements = []valueNode{}
			}
			return a.print(cmd, r)
		},
	}
	cmd.Flags().BoolVar(&item, "item", false, "input is an annotation_item with a leading visibility byte")
	return cmd
}
