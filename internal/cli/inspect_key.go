package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"changes2aptly/internal/app"
)

func newInspectKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect-key KEY...",
		Short: "Parse aptly package keys and print their fields",
		Args:  requireArgs("at least one aptly key is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspectKey(cmd, args)
		},
	}
	return cmd
}

func runInspectKey(cmd *cobra.Command, args []string) error {
	service := newAppService()
	result, err := service.InspectKeys(app.InspectKeyRequest{Keys: args})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, key := range result.Keys {
		if i > 0 {
			fmt.Fprintln(out)
		}
		kind := "binary"
		if key.IsSource() {
			kind = "source"
		}
		printKeyField(out, "key", key.String())
		printKeyField(out, "short key", key.ShortKey())
		printKeyField(out, "architecture", key.Architecture)
		printKeyField(out, "package", key.Package)
		printKeyField(out, "version", key.Version)
		printKeyField(out, "files hash", key.Hash)
		printKeyField(out, "kind", kind)
	}
	return nil
}

func printKeyField(w io.Writer, name string, value string) {
	fmt.Fprintf(w, "%-13s %s\n", name+":", value)
}
