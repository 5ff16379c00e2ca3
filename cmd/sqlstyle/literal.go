package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlstyle/dialect/sql/style"
)

func newLiteralCmd(a *app) *cobra.Command {
	var (
		typ  string
		list bool
		like bool
	)
	cmd := &cobra.Command{
		Use:   "literal VALUE...",
		Short: "Render values as SQL literals",
		Example: `  sqlstyle literal --type int 42
  sqlstyle literal --type date 2024-03-01
  sqlstyle literal --list --type string a b "it's"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(typ, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if list {
				_, err = fmt.Fprintln(out, render(a.style, values, like))
				return err
			}
			for _, v := range values {
				if _, err := fmt.Fprintln(out, render(a.style, v, like)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "string", "value type: "+typeNames())
	cmd.Flags().BoolVar(&list, "list", false, "render all values as one parenthesized list")
	cmd.Flags().BoolVar(&like, "like", false, "render as a LIKE pattern")
	return cmd
}

func render(s *style.Style, v any, like bool) string {
	if like {
		return s.ToLikePattern(v)
	}
	return s.ToPlainText(v)
}
