package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/regexify/regexify/internal/domain"
	"github.com/regexify/regexify/internal/patterns"
	"github.com/regexify/regexify/internal/plugins/ai/vendors"
	"github.com/regexify/regexify/internal/plugins/db/sqlite"
	"github.com/regexify/regexify/internal/resolver"
	restapi "github.com/regexify/regexify/internal/server"
	"github.com/regexify/regexify/internal/storage"
	"github.com/regexify/regexify/internal/table"
	"github.com/regexify/regexify/internal/util"
)

const databaseName = "regexify.db"

func newServeCmd(flags *Flags) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}

			processor, err := newProcessor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			files, err := sqlite.Open(filepath.Join(cfg.Server.DataDir, databaseName))
			if err != nil {
				return err
			}
			defer files.Close()
			uploads, err := storage.NewUploads(filepath.Join(cfg.Server.DataDir, "uploads"))
			if err != nil {
				return err
			}

			engine := restapi.NewEngine(processor, files, uploads)
			return restapi.Serve(cmd.Context(), cfg.Server.Address, engine)
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (default :8000)")
	return cmd
}

func newApplyCmd(flags *Flags) *cobra.Command {
	var file, out string

	cmd := &cobra.Command{
		Use:   "apply --file data.csv [--out result.csv] INSTRUCTION",
		Short: "Apply an instruction to a CSV or .xlsx file",
		Long: `Resolves the instruction to a column, pattern and replacement, applies it
and prints the result as JSON. The input file is overwritten unless --out is
given. Each file's format follows its extension, so --out can convert.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			if file, err = util.ExpandPath(file); err != nil {
				return err
			}
			if out != "" {
				if out, err = util.ExpandPath(out); err != nil {
					return err
				}
			}
			processor, err := newProcessor(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			t, err := table.ReadFile(file)
			if err != nil {
				return err
			}

			result := processor.Process(cmd.Context(), t, strings.Join(args, " "))

			switch {
			case out != "":
				err = table.WriteFile(out, t)
			case result.MatchesFound > 0:
				err = table.WriteFile(file, t)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV or .xlsx file to edit")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result here instead of overwriting the input")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newResolveCmd(flags *Flags) *cobra.Command {
	var cols []string

	cmd := &cobra.Command{
		Use:   "resolve [--columns A,B,C] INSTRUCTION",
		Short: "Show the edit an instruction resolves to without applying it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			gen, err := newGenerator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			r := resolver.New(gen, vendors.Timeout(cfg.Model))
			res := r.ResolveDetailed(cmd.Context(), strings.Join(args, " "), domain.ColumnSet(cols))
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringSliceVar(&cols, "columns", nil, "available column names")
	return cmd
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in column patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEYWORD\tPATTERN")
			for _, e := range patterns.Entries() {
				fmt.Fprintf(w, "%s\t%s\n", e.Keyword, e.Expr)
			}
			fmt.Fprintf(w, "(other)\t%s\n", patterns.Words)
			return w.Flush()
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func joinNames() string {
	return strings.Join(vendors.Names(), ", ")
}
