package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/routepath"
)

func matchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match <pattern> <path>",
		Short: "Match a route pattern against a path",
		Long: `Match a route pattern against a path and print the captured params.

The pattern is validated first: empty or repeated parameter names are
reported as errors.

Examples:
  vroute match /users/:id /users/42
  vroute match /a/:x/c /a/b/c --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := routepath.Compile(args[0])
			if err != nil {
				return errors.New(errors.CodeInvalidPattern).
					WithDetailf("%v", err).
					WithExample("vroute match /users/:id /users/42").
					Wrap(err)
			}
			res := p.Match(args[1])

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				return enc.Encode(struct {
					IsMatch bool             `json:"isMatch"`
					Params  routepath.Params `json:"params"`
				}{res.IsMatch, res.Params})
			}

			if !res.IsMatch {
				fmt.Fprintln(w, "no match")
				return nil
			}
			fmt.Fprintln(w, "match")
			for _, k := range res.Params.Keys() {
				fmt.Fprintf(w, "  %s = %s\n", k, res.Params.Value(k))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
