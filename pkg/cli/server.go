package cli

import (
	"context"

	"github.com/njallactl/njallactl/pkg/njalla"
	"github.com/spf13/cobra"
)

func newServerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "server operations",
	}

	cmd.AddCommand(
		newServerListCmd(a),
		newServerImagesCmd(a),
		newServerTypesCmd(a),
		newServerAddCmd(a),
		newServerActionCmd(a, "stop", "stop a server", (*njalla.Client).StopServer),
		newServerActionCmd(a, "start", "start a server", (*njalla.Client).StartServer),
		newServerActionCmd(a, "restart", "restart a server", (*njalla.Client).RestartServer),
		newServerResetCmd(a),
		newServerActionCmd(a, "remove", "remove a server (destroys data)", (*njalla.Client).RemoveServer),
	)

	return cmd
}

func newServerListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list all servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			servers, err := client.ListServers(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, servers)
		},
	}
}

func newServerImagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "list available os images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			images, err := client.ListServerImages(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, images)
		},
	}
}

func newServerTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "list available server types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			types, err := client.ListServerTypes(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, types)
		},
	}
}

func newServerAddCmd(a *app) *cobra.Command {
	var server njalla.NewServer

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "add a new server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePositive("months", server.Months); err != nil {
				return err
			}
			server.Name = args[0]

			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			created, err := client.AddServer(cmd.Context(), server)
			if err != nil {
				return err
			}
			return a.print(cmd, created)
		},
	}

	cmd.Flags().StringVarP(&server.Type, "type", "t", "", "Server type (required, see \"server types\")")
	cmd.Flags().StringVarP(&server.OS, "os", "o", "", "OS image (required, see \"server images\")")
	cmd.Flags().StringVarP(&server.SSHKey, "ssh-key", "s", "", "Public SSH key (required)")
	cmd.Flags().IntVarP(&server.Months, "months", "m", 1, "Billing period in months")

	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("os")
	_ = cmd.MarkFlagRequired("ssh-key")

	return cmd
}

func newServerResetCmd(a *app) *cobra.Command {
	var os, sshKey, serverType string

	cmd := &cobra.Command{
		Use:   "reset <id>",
		Short: "factory reset a server (destroys data)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			server, err := client.ResetServer(cmd.Context(), args[0], os, sshKey, serverType)
			if err != nil {
				return err
			}
			return a.print(cmd, server)
		},
	}

	cmd.Flags().StringVarP(&os, "os", "o", "", "OS image (required)")
	cmd.Flags().StringVarP(&sshKey, "ssh-key", "s", "", "Public SSH key (required)")
	cmd.Flags().StringVarP(&serverType, "type", "t", "", "Server type (required)")

	_ = cmd.MarkFlagRequired("os")
	_ = cmd.MarkFlagRequired("ssh-key")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// newServerActionCmd builds a command that applies action to one server id
// and prints the returned server.
func newServerActionCmd(a *app, use, short string, action func(*njalla.Client, context.Context, string) (*njalla.Server, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			server, err := action(client, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, server)
		},
	}
}
