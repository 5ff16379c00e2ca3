package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlstyle/dialect/sql"
)

func newBindCmd(a *app) *cobra.Command {
	var typ, nullType string
	cmd := &cobra.Command{
		Use:   "bind [VALUE]",
		Short: "Show the bind a value is sent to the database as",
		Long: `Show the bind a value is sent to the database as.

The first line is the type code and value of the bind. The second line is the
argument handed to the database driver after the bind is written.
Without VALUE a null is bound, typed by --null-type when it is set.`,
		Example: `  sqlstyle bind --type decimal 12.50
  sqlstyle bind --type bool true
  sqlstyle bind --null-type timestamp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				v    any
				hint reflect.Type
				err  error
			)
			if len(args) == 1 {
				if v, err = parseValue(typ, args[0]); err != nil {
					return err
				}
			}
			if nullType != "" {
				var ok bool
				if hint, ok = valueTypes[strings.ToLower(nullType)]; !ok {
					return fmt.Errorf("unknown null type %q, expected one of %s", nullType, typeNames())
				}
			}
			b, err := a.style.BuildBindFor(v, hint)
			if err != nil {
				return err
			}
			stmt := sql.NewArgs(a.style.Dialect(), 1)
			if err := a.style.WriteBind(stmt, 1, b); err != nil {
				return err
			}
			arg := stmt.Values()[0]
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%T %v\n", b, arg, arg)
			return err
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "string", "value type: "+typeNames())
	cmd.Flags().StringVar(&nullType, "null-type", "", "type hint for a null value")
	return cmd
}
