package cmd

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/kai"
	"github.com/au2001/onepace-stremio/metadata"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().Bool("legacy", false, "Generate the JSON Schema of the legacy arc listing")
	schemaCmd.Flags().Bool("kai", false, "Generate the JSON Schema of the Kai fill-in document")
	schemaCmd.Flags().Bool("stream", false, "Generate the JSON Schema of stream records")
	schemaCmd.MarkFlagsMutuallyExclusive("legacy", "kai", "stream")
}

// schemaCmd generates JSON schemas for the documents the builder reads and writes.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON Schema of the arc listing and related documents",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return t.Name()
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("legacy")):
			schema = reflector.Reflect(&metadata.DocumentV1{})
		case lo.Must(cmd.Flags().GetBool("kai")):
			schema = reflector.Reflect(&kai.Document{})
		case lo.Must(cmd.Flags().GetBool("stream")):
			schema = reflector.Reflect(&catalog.Stream{})
		default:
			schema = reflector.Reflect(&metadata.DocumentV2{})
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
