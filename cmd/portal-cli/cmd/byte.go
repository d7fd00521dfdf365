package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/clubportal/cmd/portal-cli/internal/output"
	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/modules/bytereg"
	"github.com/nfrund/clubportal/internal/registration"
)

var byteCmd = &cobra.Command{
	Use:   "byte",
	Short: "Inspect and submit the BYTE class registration",
}

var byteStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the BYTE registration status of the signed-in member",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.CheckFormat(formatFlag); err != nil {
			return err
		}
		if cookieFlag == "" {
			return errNeedsCookie
		}
		c, err := client(loadedConfig, cookieFlag)
		if err != nil {
			return err
		}
		flow := registration.NewFlow(registration.ByteEndpoint(), c, registration.WithFallback(registration.FallbackUnknown))
		return byteStatus(cmd.Context(), cmd.OutOrStdout(), flow, formatFlag)
	},
}

var byteRegisterCmd = &cobra.Command{
	Use:   "register <domain>",
	Short: "Register the signed-in member for a BYTE domain",
	Long: fmt.Sprintf(`Register the signed-in member for a BYTE domain.

Domains: %s`, strings.Join(domainValues(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.CheckFormat(formatFlag); err != nil {
			return err
		}
		if !slices.Contains(domainValues(), args[0]) {
			return fmt.Errorf("unknown domain %q, expected one of: %s", args[0], strings.Join(domainValues(), ", "))
		}
		if cookieFlag == "" {
			return errNeedsCookie
		}
		c, err := client(loadedConfig, cookieFlag)
		if err != nil {
			return err
		}
		return submit(cmd.Context(), cmd.OutOrStdout(), registration.NewFlow(registration.ByteEndpoint(), c), formatFlag, args[0])
	},
}

func init() {
	byteCmd.AddCommand(byteStatusCmd, byteRegisterCmd)
	rootCmd.AddCommand(byteCmd)
}

func byteStatus(ctx context.Context, w io.Writer, flow *registration.Flow[backend.ByteRegistration], format string) error {
	_, snap := flow.Fetch(ctx)
	return output.Status(w, format, "Domain", snap.Primary())
}

func domainValues() []string {
	out := make([]string, len(bytereg.Domains))
	for i, d := range bytereg.Domains {
		out[i] = d.Value
	}
	return out
}
