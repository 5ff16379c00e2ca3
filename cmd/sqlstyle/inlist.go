package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlstyle/dialect/sql/style"
)

func newInListCmd(a *app) *cobra.Command {
	var (
		attr    string
		typ     string
		not     bool
		maxSize int
	)
	cmd := &cobra.Command{
		Use:     "inlist VALUE...",
		Aliases: []string{"in"},
		Short:   "Render an IN list predicate, split into chunks of the maximum list size",
		Example: `  sqlstyle inlist --attr ID --type int 1 2 3
  sqlstyle inlist --attr CODE --not --max-list-size 2 A B C`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(typ, args)
			if err != nil {
				return err
			}
			s := a.style
			if cmd.Flags().Changed("max-list-size") {
				s, err = style.New(
					style.WithConfig(a.cfg.Style),
					style.WithMaxListSize(maxSize),
					style.WithLogger(a.log),
				)
				if err != nil {
					return err
				}
			}
			pred := s.InList(attr, values)
			if not {
				pred = s.NotInList(attr, values)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pred)
			return err
		},
	}
	cmd.Flags().StringVarP(&attr, "attr", "a", "", "attribute (column) name")
	cmd.Flags().StringVarP(&typ, "type", "t", "string", "value type: "+typeNames())
	cmd.Flags().BoolVar(&not, "not", false, "render NOT IN")
	cmd.Flags().IntVar(&maxSize, "max-list-size", style.DefaultMaxListSize, "maximum number of values per IN list")
	_ = cmd.MarkFlagRequired("attr")
	return cmd
}
