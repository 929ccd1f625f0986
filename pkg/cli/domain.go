package cli

import (
	"fmt"

	"github.com/njallactl/njallactl/pkg/njalla"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelLookups bounds concurrent get-domain calls.
const maxParallelLookups = 4

func newDomainCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "domain operations",
	}

	cmd.AddCommand(
		newDomainListCmd(a),
		newDomainGetCmd(a),
		newDomainFindCmd(a),
		newDomainRegisterCmd(a),
		newDomainCheckTaskCmd(a),
	)

	return cmd
}

func newDomainListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list all domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			domains, err := client.ListDomains(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, domains)
		},
	}
}

func newDomainGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <domain>...",
		Short: "get domain details",
		Long: `Get details for one or more domains.

With a single domain the result is printed as an object, with several as a
list in argument order. Nothing is printed unless every lookup succeeds.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			domains := make([]*njalla.Domain, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelLookups)
			for i, name := range args {
				i, name := i, name
				g.Go(func() error {
					d, err := client.GetDomain(ctx, name)
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					domains[i] = d
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if len(domains) == 1 {
				return a.print(cmd, domains[0])
			}
			return a.print(cmd, domains)
		},
	}
}

func newDomainFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "search available domains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			domains, err := client.FindDomains(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, domains)
		},
	}
}

func newDomainRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register <domain> [years]",
		Short: "register a new domain",
		Long: `Start registration of a domain. Registration runs asynchronously on the
server; the printed task id can be polled with "njalla domain check-task".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			years := 1
			if len(args) == 2 {
				var err error
				if years, err = positiveInt("years", args[1]); err != nil {
					return err
				}
			}

			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			task, err := client.RegisterDomain(cmd.Context(), args[0], years)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "registration task started: %s\n", task)
			fmt.Fprintf(out, "poll with: njalla domain check-task %s\n", task)
			return nil
		},
	}
}

func newDomainCheckTaskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-task <id>",
		Short: "check async task status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			status, err := client.CheckTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}
