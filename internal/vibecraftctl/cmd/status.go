package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/kiosk404/vibecraft/pkg/codec"
	"github.com/spf13/cobra"
)

// NewCmdStatus reports the daemon's diagnostic state: bridge
// connection, WorldEdit capability, registered tools.
func NewCmdStatus(global *GlobalOptions, streams IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's bridge state and capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := &http.Client{Timeout: 5 * time.Second}
			resp, err := httpClient.Get(global.StatusURL + "/status")
			if err != nil {
				return fmt.Errorf("daemon unreachable at %s: %w", global.StatusURL, err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			var status map[string]interface{}
			if err := codec.Unmarshal(body, &status); err != nil {
				return fmt.Errorf("malformed status response: %w", err)
			}

			state, _ := status["bridge_state"].(string)
			stateColor := color.New(color.FgRed)
			if state == "Ready" {
				stateColor = color.New(color.FgGreen)
			}
			fmt.Fprintf(streams.Out, "Bridge:    %s\n", stateColor.Sprint(state))
			fmt.Fprintf(streams.Out, "Pending:   %v\n", status["pending_requests"])
			fmt.Fprintf(streams.Out, "WorldEdit: mode=%v available=%v %v\n",
				status["worldedit_mode"], status["worldedit_available"], status["worldedit_reason"])

			if tools, ok := status["tools"].([]interface{}); ok {
				fmt.Fprintf(streams.Out, "Tools:     %d registered\n", len(tools))
			}
			return nil
		},
	}
}
