package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
)

// App holds references to the clients used by CLI commands.
type App struct {
	Plans api.PlansV1
	Out   io.Writer
}

// NewRootCmd creates the top-level "plans" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "plans",
		Short:         "Manage GoCardless subscriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newIndexCmd(app),
		newFindCmd(app),
		newCreateCmd(app),
		newCancelCmd(app),
	)

	return root
}

// print writes v to the App output as indented JSON.
func (app *App) print(v interface{}) error {
	enc := json.NewEncoder(app.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func metadataFlag(fs *pflag.FlagSet, target *map[string]string) {
	fs.StringToStringVar(target, "metadata", nil, "Metadata key=value pairs, comma separated")
}
